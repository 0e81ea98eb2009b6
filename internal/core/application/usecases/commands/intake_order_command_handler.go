package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/domain/services"
	"ordercart/internal/core/ports"
	"ordercart/internal/pkg/errs"
	"ordercart/internal/pkg/metrics"
)

// IntakeResult reports the outcome of a successful admission.
type IntakeResult struct {
	OrderID   kernel.UUID
	Status    order.Status
	Warnings  []string
	ReorderOf *kernel.UUID
}

// IntakeOrderCommandHandler handles the business logic for order admission.
// Runs the full intake sequence: normalization, validation, duplicate
// detection via fingerprint reservation, persistence, and post-commit
// notifications.
//
// The fingerprint reservation inside the intake transaction is the
// linearization point for duplicate detection: of two concurrent submissions
// with identical content exactly one admission commits.
type IntakeOrderCommandHandler struct {
	uowFactory              IntakeUoWFactory
	classifier              ports.Classifier
	validator               services.Validator
	fingerprinter           services.Fingerprinter
	publisher               ports.EventPublisher
	mailer                  ports.Mailer
	registry                *metrics.Registry
	logger                  *slog.Logger
	allowReorderAfterClosed bool
}

// NewIntakeOrderCommandHandler creates a handler for order admission.
func NewIntakeOrderCommandHandler(
	uowFactory IntakeUoWFactory,
	classifier ports.Classifier,
	publisher ports.EventPublisher,
	mailer ports.Mailer,
	registry *metrics.Registry,
	logger *slog.Logger,
	allowReorderAfterClosed bool,
) IntakeOrderCommandHandler {
	return IntakeOrderCommandHandler{
		uowFactory:              uowFactory,
		classifier:              classifier,
		validator:               services.NewValidator(),
		fingerprinter:           services.NewFingerprinter(),
		publisher:               publisher,
		mailer:                  mailer,
		registry:                registry,
		logger:                  logger.With("component", "intake"),
		allowReorderAfterClosed: allowReorderAfterClosed,
	}
}

// Handle processes the admission command.
// A rejected submission is never persisted: the validation failure is
// returned to the caller and recorded as an audit event. An admitted order
// commits in "validated" status before any event or mail leaves the handler.
func (h *IntakeOrderCommandHandler) Handle(ctx context.Context, cmd IntakeOrderCommand) (IntakeResult, error) {
	if err := cmd.Validate(); err != nil {
		return IntakeResult{}, err
	}

	candidate, err := h.classifier.Normalize(ctx, cmd.Payload())
	if err != nil {
		return IntakeResult{}, err
	}

	validation := h.validator.Validate(candidate)
	if !validation.Passed() {
		h.registry.OrdersRejected.Inc()
		h.publish(ctx, ports.Event{
			OrderID:    cmd.OrderID(),
			EventType:  ports.EventOrderRejected,
			OccurredAt: time.Now().UTC(),
			Payload:    map[string]any{"errors": validation.Errors()},
		})
		return IntakeResult{}, errs.NewValidationFailedError(validation.Errors(), validation.Warnings())
	}

	fingerprint := h.fingerprinter.Fingerprint(candidate)
	now := time.Now().UTC()

	newOrder, err := order.NewOrderFromCandidate(cmd.OrderID(), fingerprint, candidate, validation, now)
	if err != nil {
		return IntakeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return IntakeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	fingerprintRepo := uow.FingerprintRepository()

	if err = fingerprintRepo.Reserve(ctx, fingerprint, cmd.OrderID()); err != nil {
		var duplicateErr errs.DuplicateOrderError
		if !errors.As(err, &duplicateErr) {
			return IntakeResult{}, err
		}

		if err = h.claimReorder(ctx, orderRepo, fingerprintRepo, newOrder, duplicateErr); err != nil {
			if errors.As(err, &duplicateErr) {
				h.registry.OrdersDuplicate.Inc()
			}
			return IntakeResult{}, err
		}
	}

	if _, err = newOrder.TransitionTo(order.Validated, cmd.Actor(), now); err != nil {
		return IntakeResult{}, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return IntakeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return IntakeResult{}, err
	}

	h.registry.OrdersAdmitted.Inc()
	h.publish(ctx, ports.Event{
		OrderID:    newOrder.ID(),
		EventType:  ports.EventOrderAdmitted,
		OccurredAt: time.Now().UTC(),
		Payload:    map[string]any{"status": newOrder.Status().String(), "fingerprint": fingerprint},
	})
	h.sendConfirmation(ctx, newOrder)

	return IntakeResult{
		OrderID:   newOrder.ID(),
		Status:    newOrder.Status(),
		Warnings:  validation.Warnings(),
		ReorderOf: newOrder.ReorderOf(),
	}, nil
}

// claimReorder handles a fingerprint collision. When the prior order is
// terminal (delivered or closed) and reorders are allowed, the reservation
// moves to the new order and the admission continues; otherwise the duplicate
// error stands.
func (h *IntakeOrderCommandHandler) claimReorder(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	fingerprintRepo ports.FingerprintRepository,
	newOrder *order.Order,
	duplicateErr errs.DuplicateOrderError,
) error {
	if !h.allowReorderAfterClosed {
		return duplicateErr
	}

	priorID, err := kernel.UUIDFromString(duplicateErr.PriorOrderID)
	if err != nil {
		return duplicateErr
	}

	prior, err := orderRepo.Get(ctx, priorID)
	if err != nil {
		return duplicateErr
	}

	if !prior.Status().IsTerminal() {
		return duplicateErr
	}

	if err = fingerprintRepo.Transfer(ctx, newOrder.Fingerprint(), prior.ID(), newOrder.ID()); err != nil {
		return err
	}

	return newOrder.MarkReorder(prior.ID())
}

func (h *IntakeOrderCommandHandler) publish(ctx context.Context, event ports.Event) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Error("failed to publish event",
			"event_type", event.EventType,
			"order_id", event.OrderID.String(),
			"error", err)
	}
}

func (h *IntakeOrderCommandHandler) sendConfirmation(ctx context.Context, admitted *order.Order) {
	message, err := h.classifier.DraftMessage(ctx, admitted, "order confirmation")
	if err != nil {
		h.registry.MailFailures.Inc()
		h.logger.Error("failed to draft confirmation", "order_id", admitted.ID().String(), "error", err)
		return
	}

	if _, err = h.mailer.Send(ctx, admitted.Customer().Email(), message.Subject, message.Body); err != nil {
		h.registry.MailFailures.Inc()
		h.logger.Error("failed to send confirmation", "order_id", admitted.ID().String(), "error", err)
	}
}
