package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/metrics"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
)

// ProposalSweepJob proposes assignments for the pending-order backlog.
// Runs every minute, right after the expiry sweep frees aged-out orders.
type ProposalSweepJob struct {
	handler       commands.ProposeAssignmentsCommandHandler
	cron          *cron.Cron
	engineMetrics *metrics.Metrics
	logger        *slog.Logger
}

// NewProposalSweepJob creates the proposal sweep. engineMetrics may be nil.
func NewProposalSweepJob(
	handler commands.ProposeAssignmentsCommandHandler,
	engineMetrics *metrics.Metrics,
	logger *slog.Logger,
) *ProposalSweepJob {
	return &ProposalSweepJob{
		handler:       handler,
		cron:          cron.New(),
		engineMetrics: engineMetrics,
		logger:        logger.With("component", "proposal_sweep_job"),
	}
}

// Start begins the proposal sweep, running every minute.
func (j *ProposalSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewProposeAssignmentsCommand(nil, commands.DefaultSearchRadiusKm)
		if err != nil {
			j.logger.ErrorContext(ctx, "Proposal sweep misconfigured", "error", err)
			return
		}

		if _, err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty backlog or courier pool is the idle state
			if !errors.Is(err, errs.ErrNoCandidates) {
				j.logger.ErrorContext(ctx, "Proposal sweep failed", "error", err)
			}
			return
		}

		if j.engineMetrics != nil {
			j.engineMetrics.ProposalsCreated.Inc()
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Proposal sweep job started (running every minute)")
	return nil
}

// Stop stops the proposal sweep.
func (j *ProposalSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Proposal sweep job stopped")
}
