package commands

import (
	"context"
	"log/slog"
	"time"

	"ordercart/internal/core/ports"
	"ordercart/internal/pkg/metrics"
)

// RaiseExceptionCommandHandler moves an order into the exception state.
// The aggregate enforces that only orders between validation and packing can
// raise an exception.
type RaiseExceptionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	registry   *metrics.Registry
	logger     *slog.Logger
}

// NewRaiseExceptionCommandHandler creates a handler for raising exceptions.
func NewRaiseExceptionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	registry *metrics.Registry,
	logger *slog.Logger,
) RaiseExceptionCommandHandler {
	return RaiseExceptionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		registry:   registry,
		logger:     logger.With("component", "raise_exception"),
	}
}

// Handle processes the raise-exception command.
func (h *RaiseExceptionCommandHandler) Handle(ctx context.Context, cmd RaiseExceptionCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	previous, err := aggregate.RaiseException(cmd.Category(), cmd.Reasons(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return TransitionResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.registry.ExceptionsRaised.Inc()
	event := ports.Event{
		OrderID:    aggregate.ID(),
		EventType:  ports.EventOrderExceptionRaised,
		OccurredAt: time.Now().UTC(),
		Payload: map[string]any{
			"from":     previous.String(),
			"category": cmd.Category().String(),
			"reasons":  cmd.Reasons(),
		},
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish event",
			"event_type", event.EventType,
			"order_id", event.OrderID.String(),
			"error", err)
	}

	return TransitionResult{
		OrderID: aggregate.ID(),
		From:    previous,
		To:      aggregate.Status(),
		Version: aggregate.Version(),
	}, nil
}
