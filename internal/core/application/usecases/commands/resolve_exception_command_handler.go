package commands

import (
	"context"
	"log/slog"
	"time"

	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/ports"
	"ordercart/internal/pkg/metrics"
)

// ResolveExceptionCommandHandler resolves an order's active exception.
// The aggregate archives the resolved record for audit and the order resumes
// in the processing status.
type ResolveExceptionCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	registry   *metrics.Registry
	logger     *slog.Logger
}

// NewResolveExceptionCommandHandler creates a handler for resolving exceptions.
func NewResolveExceptionCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	registry *metrics.Registry,
	logger *slog.Logger,
) ResolveExceptionCommandHandler {
	return ResolveExceptionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		registry:   registry,
		logger:     logger.With("component", "resolve_exception"),
	}
}

// Handle processes the resolve command and returns the archived record.
func (h *ResolveExceptionCommandHandler) Handle(ctx context.Context, cmd ResolveExceptionCommand) (order.ExceptionRecord, error) {
	if err := cmd.Validate(); err != nil {
		return order.ExceptionRecord{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.ExceptionRecord{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.ExceptionRecord{}, err
	}

	resolved, err := aggregate.ResolveException(cmd.Notes(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return order.ExceptionRecord{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return order.ExceptionRecord{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.ExceptionRecord{}, err
	}

	h.registry.ExceptionsResolved.Inc()
	event := ports.Event{
		OrderID:    aggregate.ID(),
		EventType:  ports.EventOrderStatusChanged,
		OccurredAt: time.Now().UTC(),
		Payload: map[string]any{
			"from": order.Exception.String(),
			"to":   aggregate.Status().String(),
		},
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish event",
			"event_type", event.EventType,
			"order_id", event.OrderID.String(),
			"error", err)
	}

	return resolved, nil
}
