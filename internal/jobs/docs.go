// Package jobs provides scheduled background tasks for the order pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the fulfillment flow.
//
// # Available Jobs
//
// 1. BatchSuggestionJob - Runs every minute to recompute batch proposals over
// the eligible order pool and log what the planner would group.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(suggestBatchesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Suggestion refresh failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
