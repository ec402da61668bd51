// Package jobs provides scheduled background tasks for the assignment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to keep the proposal pipeline moving without manual intervention.
//
// # Available Jobs
//
// 1. AssignmentExpiryJob - Runs every minute to expire pending proposals older than the decision window
// 2. ProposalSweepJob - Runs every minute to propose assignments for orders still waiting (new intake, detached by capacity splits, or freed by expiry)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, proposeHandler, engineMetrics, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep ignores ErrNoCandidates: an empty backlog or an empty courier
// pool is the normal idle state, not a failure.
package jobs
