package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/Aliaga23/SIG-Backend/internal/core/application/usecases/commands"
	"github.com/Aliaga23/SIG-Backend/internal/metrics"
)

// AssignmentExpiryJob expires pending proposals that outlived the decision
// window. Runs every minute; the expired orders return to the backlog and
// the next sweep re-proposes them.
type AssignmentExpiryJob struct {
	handler       commands.ExpireAssignmentsCommandHandler
	cron          *cron.Cron
	engineMetrics *metrics.Metrics
	logger        *slog.Logger
}

// NewAssignmentExpiryJob creates the expiry sweep. engineMetrics may be nil.
func NewAssignmentExpiryJob(
	handler commands.ExpireAssignmentsCommandHandler,
	engineMetrics *metrics.Metrics,
	logger *slog.Logger,
) *AssignmentExpiryJob {
	return &AssignmentExpiryJob{
		handler:       handler,
		cron:          cron.New(),
		engineMetrics: engineMetrics,
		logger:        logger.With("component", "assignment_expiry_job"),
	}
}

// Start begins the expiry sweep, running every minute.
func (j *AssignmentExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireAssignmentsCommand(commands.DefaultExpiryMinutes)
		if err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep misconfigured", "error", err)
			return
		}

		expiredIDs, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
			return
		}

		if j.engineMetrics != nil {
			j.engineMetrics.AssignmentsExpired.Add(float64(len(expiredIDs)))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry sweep.
func (j *AssignmentExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment expiry job stopped")
}
