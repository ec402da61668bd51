package commands

import (
	"errors"
	"fmt"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

var ErrProposeAssignmentsCommandIsNotConstructed = errors.New(
	"ProposeAssignmentsCommand must be created via NewProposeAssignmentsCommand constructor",
)

// ProposeAssignmentsCommand requests an automatic assignment proposal over
// pending orders: either an explicit list of order IDs or, when empty, every
// pending order. The radius bounds the courier search around the batch
// centroid.
//
// Example:
//
//	cmd, err := NewProposeAssignmentsCommand(nil, 5)
//	if err != nil {
//	    return err
//	}
//	proposals, err := handler.Handle(ctx, cmd)
type ProposeAssignmentsCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewProposeAssignmentsCommand creates a proposal command. An empty orderIDs
// slice means "all pending orders". A non-positive radius falls back to
// DefaultSearchRadiusKm.
func NewProposeAssignmentsCommand(orderIDs []kernel.UUID, radiusKm float64) (ProposeAssignmentsCommand, error) {
	command := ProposeAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderIDs(orderIDs),
		command.setRadiusKm(radiusKm),
	); err != nil {
		return ProposeAssignmentsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProposeAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrProposeAssignmentsCommandIsNotConstructed)
}

// OrderIDs returns the explicit order selection, empty for "all pending".
func (c ProposeAssignmentsCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// RadiusKm returns the courier search radius.
func (c ProposeAssignmentsCommand) RadiusKm() float64 {
	return c.radiusKm
}

func (c *ProposeAssignmentsCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}

func (c *ProposeAssignmentsCommand) setRadiusKm(radiusKm float64) error {
	if radiusKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("radiusKm is invalid",
			fmt.Errorf("%g is negative", radiusKm))
	}
	if radiusKm == 0 {
		radiusKm = DefaultSearchRadiusKm
	}
	c.radiusKm = radiusKm
	return nil
}
