package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// ExpireAssignmentsCommandHandler marks stale pending proposals as expired.
// The linked orders stay pending so the next proposal pass can pick them up
// again.
type ExpireAssignmentsCommandHandler struct {
	uowFactory EngineUoWFactory
	logger     *slog.Logger
}

// NewExpireAssignmentsCommandHandler creates a handler for the expiry sweep.
func NewExpireAssignmentsCommandHandler(uowFactory EngineUoWFactory, logger *slog.Logger) ExpireAssignmentsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return ExpireAssignmentsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "expire_assignments"),
	}
}

// Handle processes the sweep and returns the IDs of the proposals it expired.
func (h ExpireAssignmentsCommandHandler) Handle(ctx context.Context, command ExpireAssignmentsCommand) ([]kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-time.Duration(command.OlderThanMinutes()) * time.Minute)

	stale, err := uow.AssignmentRepository().GetAllPendingOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	expiredIDs := make([]kernel.UUID, 0, len(stale))
	for _, proposal := range stale {
		if err := proposal.Expire(); err != nil {
			return nil, err
		}
		if err := uow.AssignmentRepository().Update(ctx, proposal); err != nil {
			return nil, err
		}
		expiredIDs = append(expiredIDs, proposal.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	if len(expiredIDs) > 0 {
		h.logger.InfoContext(ctx, "expired stale assignment proposals",
			"count", len(expiredIDs), "older_than_minutes", command.OlderThanMinutes())
	}

	return expiredIDs, nil
}
