package commands

import (
	"context"
	"time"
)

// CleanupStaleAssignmentsCommandHandler rejects a courier's stale pending
// proposals. Unlike the global expiry sweep this acts only on the proposals
// offered to one courier, so the caller can clear their own backlog.
type CleanupStaleAssignmentsCommandHandler struct {
	uowFactory EngineUoWFactory
}

// NewCleanupStaleAssignmentsCommandHandler creates a handler for
// courier-scoped proposal cleanup.
func NewCleanupStaleAssignmentsCommandHandler(uowFactory EngineUoWFactory) CleanupStaleAssignmentsCommandHandler {
	return CleanupStaleAssignmentsCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cleanup and returns how many proposals were rejected.
func (h CleanupStaleAssignmentsCommandHandler) Handle(ctx context.Context, command CleanupStaleAssignmentsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.AssignmentRepository().GetPendingByCourier(ctx, command.CourierID())
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-time.Duration(command.OlderThanHours()) * time.Hour)

	rejected := 0
	for _, proposal := range pending {
		if !proposal.IsOlderThan(cutoff) {
			continue
		}
		if err := proposal.Reject(); err != nil {
			return 0, err
		}
		if err := uow.AssignmentRepository().Update(ctx, proposal); err != nil {
			return 0, err
		}
		rejected++
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return rejected, nil
}
