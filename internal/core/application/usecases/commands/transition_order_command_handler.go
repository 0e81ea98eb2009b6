package commands

import (
	"context"
	"log/slog"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/ports"
	"ordercart/internal/pkg/metrics"
)

// TransitionResult reports a completed status change.
type TransitionResult struct {
	OrderID kernel.UUID
	From    order.Status
	To      order.Status
	Version int64
}

// TransitionOrderCommandHandler handles the business logic for lifecycle
// transitions. The transition is validated by the order aggregate itself; the
// handler adds optimistic concurrency via the version-conditioned update and
// post-commit notifications.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	classifier ports.Classifier
	publisher  ports.EventPublisher
	mailer     ports.Mailer
	registry   *metrics.Registry
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	classifier ports.Classifier,
	publisher ports.EventPublisher,
	mailer ports.Mailer,
	registry *metrics.Registry,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		classifier: classifier,
		publisher:  publisher,
		mailer:     mailer,
		registry:   registry,
		logger:     logger.With("component", "transition"),
	}
}

// Handle processes the transition command.
// The update is conditioned on the version the order was loaded with, so a
// concurrent writer loses with a concurrent modification error instead of
// silently overwriting state.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (TransitionResult, error) {
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

	previous, err := aggregate.TransitionTo(cmd.Target(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return TransitionResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	h.registry.Transitions.Inc()
	h.publishStatusChanged(ctx, aggregate, previous)
	h.notifyCustomer(ctx, aggregate)

	return TransitionResult{
		OrderID: aggregate.ID(),
		From:    previous,
		To:      aggregate.Status(),
		Version: aggregate.Version(),
	}, nil
}

func (h *TransitionOrderCommandHandler) publishStatusChanged(ctx context.Context, aggregate *order.Order, previous order.Status) {
	event := ports.Event{
		OrderID:    aggregate.ID(),
		EventType:  ports.EventOrderStatusChanged,
		OccurredAt: time.Now().UTC(),
		Payload: map[string]any{
			"from": previous.String(),
			"to":   aggregate.Status().String(),
		},
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish event",
			"event_type", event.EventType,
			"order_id", event.OrderID.String(),
			"error", err)
	}
}

// notifyCustomer mails shipment and delivery notices. Mail failures are
// logged and counted but never affect the committed transition.
func (h *TransitionOrderCommandHandler) notifyCustomer(ctx context.Context, aggregate *order.Order) {
	var reason string
	switch aggregate.Status() {
	case order.Shipped:
		reason = "shipment notice"
	case order.Delivered:
		reason = "delivery notice"
	default:
		return
	}

	message, err := h.classifier.DraftMessage(ctx, aggregate, reason)
	if err != nil {
		h.registry.MailFailures.Inc()
		h.logger.Error("failed to draft notice", "order_id", aggregate.ID().String(), "error", err)
		return
	}

	if _, err = h.mailer.Send(ctx, aggregate.Customer().Email(), message.Subject, message.Body); err != nil {
		h.registry.MailFailures.Inc()
		h.logger.Error("failed to send notice", "order_id", aggregate.ID().String(), "error", err)
	}
}
