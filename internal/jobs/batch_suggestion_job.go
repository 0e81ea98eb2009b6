package jobs

import (
	"context"
	"log/slog"

	"ordercart/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// batchStrategies are the grouping strategies the refresh cycles through.
var batchStrategies = []string{"region", "urgency", "product"}

// BatchSuggestionJob periodically recomputes batch proposals over the eligible
// order pool and logs what the planner would group. Proposals are advisory:
// nothing is persisted, operators act on them through the batch endpoints.
type BatchSuggestionJob struct {
	handler queries.SuggestBatchesQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBatchSuggestionJob creates a job refreshing proposals every minute.
func NewBatchSuggestionJob(handler queries.SuggestBatchesQueryHandler, logger *slog.Logger) *BatchSuggestionJob {
	return &BatchSuggestionJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "batch_suggestion_job"),
	}
}

// Start begins the suggestion refresh on a one-minute schedule.
func (j *BatchSuggestionJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		for _, strategy := range batchStrategies {
			query, queryErr := queries.NewSuggestBatchesQuery(strategy)
			if queryErr != nil {
				j.logger.ErrorContext(ctx, "Batch suggestion query construction failed",
					"strategy", strategy, "error", queryErr)
				continue
			}

			proposals, handleErr := j.handler.Handle(ctx, query)
			if handleErr != nil {
				j.logger.ErrorContext(ctx, "Batch suggestion refresh failed",
					"strategy", strategy, "error", handleErr)
				continue
			}

			for _, proposal := range proposals {
				j.logger.InfoContext(ctx, "Batch proposal available",
					"strategy", strategy,
					"name", proposal.Name,
					"members", len(proposal.MemberOrderIDs),
					"savings_minutes", proposal.SavingsMinutes)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Batch suggestion job started (running every minute)")
	return nil
}

// Stop stops the suggestion refresh.
func (j *BatchSuggestionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Batch suggestion job stopped")
}
