package commands

import (
	"context"
	"log/slog"
	"time"

	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/ports"
	"ordercart/internal/pkg/errs"
)

// AnalyzeExceptionCommandHandler runs the classifier over an order's active
// exception and stores the diagnosis on its record. Re-running the analysis
// overwrites the previous diagnosis; the operation is idempotent.
type AnalyzeExceptionCommandHandler struct {
	uowFactory OrderUoWFactory
	classifier ports.Classifier
	logger     *slog.Logger
}

// NewAnalyzeExceptionCommandHandler creates a handler for exception analysis.
func NewAnalyzeExceptionCommandHandler(
	uowFactory OrderUoWFactory,
	classifier ports.Classifier,
	logger *slog.Logger,
) AnalyzeExceptionCommandHandler {
	return AnalyzeExceptionCommandHandler{
		uowFactory: uowFactory,
		classifier: classifier,
		logger:     logger.With("component", "analyze_exception"),
	}
}

// Handle processes the analysis command.
// Returns a not-in-exception error when the order has no active exception.
func (h *AnalyzeExceptionCommandHandler) Handle(ctx context.Context, cmd AnalyzeExceptionCommand) (ports.ExceptionAnalysis, error) {
	if err := cmd.Validate(); err != nil {
		return ports.ExceptionAnalysis{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.ExceptionAnalysis{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.ExceptionAnalysis{}, err
	}

	if aggregate.Status() != order.Exception {
		return ports.ExceptionAnalysis{}, errs.NewNotInExceptionError(
			aggregate.ID().String(), aggregate.Status().String())
	}

	analysis, err := h.classifier.ClassifyException(ctx, aggregate)
	if err != nil {
		return ports.ExceptionAnalysis{}, err
	}

	if err = aggregate.AttachAnalysis(
		analysis.RootCause,
		analysis.SuggestedAction,
		analysis.Priority,
		cmd.Actor(),
		time.Now().UTC(),
	); err != nil {
		return ports.ExceptionAnalysis{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return ports.ExceptionAnalysis{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.ExceptionAnalysis{}, err
	}

	return analysis, nil
}
