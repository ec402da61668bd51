package commands

import (
	"errors"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

var ErrCleanupStaleAssignmentsCommandIsNotConstructed = errors.New(
	"CleanupStaleAssignmentsCommand must be created via NewCleanupStaleAssignmentsCommand constructor",
)

// DefaultCleanupHours is the staleness window for a courier-scoped cleanup
// when no explicit window is given.
const DefaultCleanupHours = 24

// CleanupStaleAssignmentsCommand rejects a courier's own pending proposals
// that have gone stale, clearing their inbox without touching anyone else's.
type CleanupStaleAssignmentsCommand struct { //nolint:recvcheck //using for validation
	courierID      kernel.UUID
	olderThanHours int

	guard guard.ConstructorGuard
}

// NewCleanupStaleAssignmentsCommand creates a cleanup command. A zero window
// selects the default; a negative window is rejected.
func NewCleanupStaleAssignmentsCommand(courierID kernel.UUID, olderThanHours int) (CleanupStaleAssignmentsCommand, error) {
	if err := courierID.Validate(); err != nil {
		return CleanupStaleAssignmentsCommand{}, err
	}
	if olderThanHours < 0 {
		return CleanupStaleAssignmentsCommand{}, errs.NewValueIsInvalidError("older_than_hours")
	}
	if olderThanHours == 0 {
		olderThanHours = DefaultCleanupHours
	}

	return CleanupStaleAssignmentsCommand{
		courierID:      courierID,
		olderThanHours: olderThanHours,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CleanupStaleAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupStaleAssignmentsCommandIsNotConstructed)
}

// CourierID returns the courier whose pending proposals are being cleaned.
func (c CleanupStaleAssignmentsCommand) CourierID() kernel.UUID {
	return c.courierID
}

// OlderThanHours returns the staleness window.
func (c CleanupStaleAssignmentsCommand) OlderThanHours() int {
	return c.olderThanHours
}
