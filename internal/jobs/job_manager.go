package jobs

import (
	"fmt"
	"log/slog"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	assignmentExpiryJob *AssignmentExpiryJob
	proposalSweepJob    *ProposalSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	expireHandler commands.ExpireAssignmentsCommandHandler,
	proposeHandler commands.ProposeAssignmentsCommandHandler,
	engineMetrics *metrics.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		assignmentExpiryJob: NewAssignmentExpiryJob(expireHandler, engineMetrics, logger),
		proposalSweepJob:    NewProposalSweepJob(proposeHandler, engineMetrics, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment expiry job: %w", err)
	}

	if err := jm.proposalSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.assignmentExpiryJob.Stop()
		return fmt.Errorf("failed to start proposal sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentExpiryJob.Stop()
	jm.proposalSweepJob.Stop()
}
