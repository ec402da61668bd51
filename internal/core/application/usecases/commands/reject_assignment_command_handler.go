package commands

import (
	"context"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/assignment"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// RejectAssignmentCommandHandler declines a pending proposal. The linked
// orders are left untouched: they stay pending and remain eligible for the
// next proposal round.
type RejectAssignmentCommandHandler struct {
	uowFactory EngineUoWFactory
}

// NewRejectAssignmentCommandHandler creates a handler for proposal rejection.
func NewRejectAssignmentCommandHandler(uowFactory EngineUoWFactory) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{uowFactory: uowFactory}
}

// Handle processes the rejection command.
func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, command RejectAssignmentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rejected, err := uow.AssignmentRepository().Get(ctx, command.AssignmentID())
	if err != nil {
		return err
	}

	if rejected.Status() != assignment.Pending || !rejected.IsOwnedBy(command.CourierID()) {
		return errs.NewInvalidStateError("assignment", "not found or already processed")
	}

	if err := rejected.Reject(); err != nil {
		return err
	}
	if err := uow.AssignmentRepository().Update(ctx, rejected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
