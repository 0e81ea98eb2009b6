package jobs

import (
	"fmt"
	"log/slog"

	"ordercart/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	batchSuggestionJob *BatchSuggestionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	suggestBatchesHandler queries.SuggestBatchesQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		batchSuggestionJob: NewBatchSuggestionJob(suggestBatchesHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.batchSuggestionJob.Start(); err != nil {
		return fmt.Errorf("failed to start batch suggestion job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.batchSuggestionJob.Stop()
}
