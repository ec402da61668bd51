package commands

import (
	"errors"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/route"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

var ErrCompleteStopCommandIsNotConstructed = errors.New(
	"CompleteStopCommand must be created via NewCompleteStopCommand constructor",
)

// CompleteStopCommand records the outcome of a delivery stop: delivered or
// failed, with an optional final location fix and free-form notes.
type CompleteStopCommand struct { //nolint:recvcheck //using for validation
	stopID        kernel.UUID
	outcome       route.StopStatus
	finalLocation *kernel.GeoPoint
	notes         string

	guard guard.ConstructorGuard
}

// NewCompleteStopCommand creates a stop completion command. The outcome must
// be a terminal stop status.
func NewCompleteStopCommand(
	stopID kernel.UUID,
	outcome route.StopStatus,
	finalLocation *kernel.GeoPoint,
	notes string,
) (CompleteStopCommand, error) {
	if err := stopID.Validate(); err != nil {
		return CompleteStopCommand{}, err
	}
	if outcome != route.StopDelivered && outcome != route.StopFailed {
		return CompleteStopCommand{}, errs.NewValueIsInvalidError("outcome")
	}
	if finalLocation != nil {
		if err := finalLocation.Validate(); err != nil {
			return CompleteStopCommand{}, err
		}
	}

	return CompleteStopCommand{
		stopID:        stopID,
		outcome:       outcome,
		finalLocation: finalLocation,
		notes:         notes,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteStopCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStopCommandIsNotConstructed)
}

// StopID returns the stop being completed.
func (c CompleteStopCommand) StopID() kernel.UUID {
	return c.stopID
}

// Outcome returns the terminal status being recorded.
func (c CompleteStopCommand) Outcome() route.StopStatus {
	return c.outcome
}

// FinalLocation returns where the courier actually finished, if reported.
func (c CompleteStopCommand) FinalLocation() *kernel.GeoPoint {
	return c.finalLocation
}

// Notes returns the courier's free-form completion notes.
func (c CompleteStopCommand) Notes() string {
	return c.notes
}
