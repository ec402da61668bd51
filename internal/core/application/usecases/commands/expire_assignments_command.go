package commands

import (
	"errors"

	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

var ErrExpireAssignmentsCommandIsNotConstructed = errors.New(
	"ExpireAssignmentsCommand must be created via NewExpireAssignmentsCommand constructor",
)

// DefaultExpiryMinutes is how long a proposal stays open before the sweep
// expires it when no explicit window is given.
const DefaultExpiryMinutes = 30

// ExpireAssignmentsCommand sweeps pending proposals older than the given
// window and marks them expired.
type ExpireAssignmentsCommand struct { //nolint:recvcheck //using for validation
	olderThanMinutes int

	guard guard.ConstructorGuard
}

// NewExpireAssignmentsCommand creates an expiry sweep command. A zero window
// selects the default; a negative window is rejected.
func NewExpireAssignmentsCommand(olderThanMinutes int) (ExpireAssignmentsCommand, error) {
	if olderThanMinutes < 0 {
		return ExpireAssignmentsCommand{}, errs.NewValueIsInvalidError("older_than_minutes")
	}
	if olderThanMinutes == 0 {
		olderThanMinutes = DefaultExpiryMinutes
	}

	return ExpireAssignmentsCommand{
		olderThanMinutes: olderThanMinutes,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAssignmentsCommandIsNotConstructed)
}

// OlderThanMinutes returns the expiry window.
func (c ExpireAssignmentsCommand) OlderThanMinutes() int {
	return c.olderThanMinutes
}
