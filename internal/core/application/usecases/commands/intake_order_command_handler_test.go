package commands_test

import (
	"testing"

	"ordercart/internal/core/application/usecases/commands"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/ports"
	"ordercart/internal/pkg/errs"
	"ordercart/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIntakeOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	payload := map[string]any{"customer_name": "Alice Smith"}
	cmd, _ := commands.NewIntakeOrderCommand(id, payload, "api")

	classifier := new(MockClassifier)
	classifier.On("Normalize", ctx, payload).Return(testCandidate(), nil).Once()
	classifier.On("DraftMessage", mock.Anything, mock.AnythingOfType("*order.Order"), "order confirmation").
		Return(ports.Message{Subject: "Order received", Body: "Thanks"}, nil).Once()

	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, "alice@example.com", "Order received", "Thanks").
		Return("receipt-1", nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.EventType == ports.EventOrderAdmitted && e.OrderID == id
	})).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	fingerprintRepo := new(MockFingerprintRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("FingerprintRepository").Return(fingerprintRepo).Once(),
		fingerprintRepo.On("Reserve", mock.Anything, mock.AnythingOfType("string"), id).Return(nil).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewIntakeOrderCommandHandler(
		factory, classifier, publisher, mailer, metrics.NewRegistry(), testLogger(), false)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, id, result.OrderID)
	assert.Equal(t, order.Validated, result.Status)
	assert.Nil(t, result.ReorderOf)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	fingerprintRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	mailer.AssertExpectations(t)
	classifier.AssertExpectations(t)
}

func TestIntakeOrderCommandHandler_Handle_ValidationFailed(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	payload := map[string]any{"customer_name": "Alice Smith"}
	cmd, _ := commands.NewIntakeOrderCommand(id, payload, "api")

	candidate := testCandidate()
	candidate.CustomerEmail = ""

	classifier := new(MockClassifier)
	classifier.On("Normalize", ctx, payload).Return(candidate, nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.EventType == ports.EventOrderRejected && e.OrderID == id
	})).Return(nil).Once()

	factory := new(MockIntakeUoWFactory)
	h := commands.NewIntakeOrderCommandHandler(
		factory, classifier, publisher, new(MockMailer), metrics.NewRegistry(), testLogger(), false)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidationFailed)

	var validationErr errs.ValidationFailedError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
	factory.AssertNotCalled(t, "Create")
	publisher.AssertExpectations(t)
}

func TestIntakeOrderCommandHandler_Handle_Duplicate(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	priorID := kernel.NewUUID()
	payload := map[string]any{"customer_name": "Alice Smith"}
	cmd, _ := commands.NewIntakeOrderCommand(id, payload, "api")

	classifier := new(MockClassifier)
	classifier.On("Normalize", ctx, payload).Return(testCandidate(), nil).Once()

	orderRepo := new(MockOrderRepository)
	fingerprintRepo := new(MockFingerprintRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("FingerprintRepository").Return(fingerprintRepo).Once(),
		fingerprintRepo.On("Reserve", mock.Anything, mock.AnythingOfType("string"), id).
			Return(errs.NewDuplicateOrderError("fp", priorID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewIntakeOrderCommandHandler(
		factory, classifier, new(MockEventPublisher), new(MockMailer), metrics.NewRegistry(), testLogger(), false)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDuplicateOrder)

	var duplicateErr errs.DuplicateOrderError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, priorID.String(), duplicateErr.PriorOrderID)
	uow.AssertExpectations(t)
}

func TestIntakeOrderCommandHandler_Handle_ReorderAfterClosed(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	priorID := kernel.NewUUID()
	payload := map[string]any{"customer_name": "Alice Smith"}
	cmd, _ := commands.NewIntakeOrderCommand(id, payload, "api")

	prior := testOrderWithID(priorID, order.Closed)

	classifier := new(MockClassifier)
	classifier.On("Normalize", ctx, payload).Return(testCandidate(), nil).Once()
	classifier.On("DraftMessage", mock.Anything, mock.AnythingOfType("*order.Order"), "order confirmation").
		Return(ports.Message{Subject: "Order received", Body: "Thanks"}, nil).Once()

	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, "alice@example.com", "Order received", "Thanks").
		Return("receipt-1", nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.EventType == ports.EventOrderAdmitted
	})).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	fingerprintRepo := new(MockFingerprintRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("FingerprintRepository").Return(fingerprintRepo).Once(),
		fingerprintRepo.On("Reserve", mock.Anything, mock.AnythingOfType("string"), id).
			Return(errs.NewDuplicateOrderError("fp", priorID.String())).Once(),
		orderRepo.On("Get", mock.Anything, priorID).Return(prior, nil).Once(),
		fingerprintRepo.On("Transfer", mock.Anything, mock.AnythingOfType("string"), priorID, id).Return(nil).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewIntakeOrderCommandHandler(
		factory, classifier, publisher, mailer, metrics.NewRegistry(), testLogger(), true)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, result.ReorderOf)
	assert.Equal(t, priorID, *result.ReorderOf)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	fingerprintRepo.AssertExpectations(t)
}

func TestIntakeOrderCommandHandler_Handle_ReorderAfterDelivered(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	priorID := kernel.NewUUID()
	payload := map[string]any{"customer_name": "Alice Smith"}
	cmd, _ := commands.NewIntakeOrderCommand(id, payload, "api")

	// Delivered is terminal just like closed, so its fingerprint is
	// reorder-eligible too.
	prior := testOrderWithID(priorID, order.Delivered)

	classifier := new(MockClassifier)
	classifier.On("Normalize", ctx, payload).Return(testCandidate(), nil).Once()
	classifier.On("DraftMessage", mock.Anything, mock.AnythingOfType("*order.Order"), "order confirmation").
		Return(ports.Message{Subject: "Order received", Body: "Thanks"}, nil).Once()

	mailer := new(MockMailer)
	mailer.On("Send", mock.Anything, "alice@example.com", "Order received", "Thanks").
		Return("receipt-1", nil).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.Event) bool {
		return e.EventType == ports.EventOrderAdmitted
	})).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	fingerprintRepo := new(MockFingerprintRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("FingerprintRepository").Return(fingerprintRepo).Once(),
		fingerprintRepo.On("Reserve", mock.Anything, mock.AnythingOfType("string"), id).
			Return(errs.NewDuplicateOrderError("fp", priorID.String())).Once(),
		orderRepo.On("Get", mock.Anything, priorID).Return(prior, nil).Once(),
		fingerprintRepo.On("Transfer", mock.Anything, mock.AnythingOfType("string"), priorID, id).Return(nil).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewIntakeOrderCommandHandler(
		factory, classifier, publisher, mailer, metrics.NewRegistry(), testLogger(), true)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, result.ReorderOf)
	assert.Equal(t, priorID, *result.ReorderOf)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	fingerprintRepo.AssertExpectations(t)
}

func TestIntakeOrderCommandHandler_Handle_ReorderDeniedWhenPriorOpen(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	priorID := kernel.NewUUID()
	payload := map[string]any{"customer_name": "Alice Smith"}
	cmd, _ := commands.NewIntakeOrderCommand(id, payload, "api")

	prior := testOrderWithID(priorID, order.Processing)

	classifier := new(MockClassifier)
	classifier.On("Normalize", ctx, payload).Return(testCandidate(), nil).Once()

	orderRepo := new(MockOrderRepository)
	fingerprintRepo := new(MockFingerprintRepository)
	uow := new(MockIntakeUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("FingerprintRepository").Return(fingerprintRepo).Once(),
		fingerprintRepo.On("Reserve", mock.Anything, mock.AnythingOfType("string"), id).
			Return(errs.NewDuplicateOrderError("fp", priorID.String())).Once(),
		orderRepo.On("Get", mock.Anything, priorID).Return(prior, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockIntakeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewIntakeOrderCommandHandler(
		factory, classifier, new(MockEventPublisher), new(MockMailer), metrics.NewRegistry(), testLogger(), true)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDuplicateOrder)
	uow.AssertExpectations(t)
	fingerprintRepo.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIntakeOrderCommandHandler_Handle_DuplicateCounter(t *testing.T) {
	t.Run("counts a rejected duplicate", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		priorID := kernel.NewUUID()
		payload := map[string]any{"customer_name": "Alice Smith"}
		cmd, _ := commands.NewIntakeOrderCommand(id, payload, "api")

		classifier := new(MockClassifier)
		classifier.On("Normalize", ctx, payload).Return(testCandidate(), nil).Once()

		orderRepo := new(MockOrderRepository)
		fingerprintRepo := new(MockFingerprintRepository)
		uow := new(MockIntakeUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			uow.On("FingerprintRepository").Return(fingerprintRepo).Once(),
			fingerprintRepo.On("Reserve", mock.Anything, mock.AnythingOfType("string"), id).
				Return(errs.NewDuplicateOrderError("fp", priorID.String())).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockIntakeUoWFactory)
		factory.On("Create").Return(uow).Once()

		registry := metrics.NewRegistry()
		h := commands.NewIntakeOrderCommandHandler(
			factory, classifier, new(MockEventPublisher), new(MockMailer), registry, testLogger(), false)
		_, err := h.Handle(ctx, cmd)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDuplicateOrder)
		assert.Equal(t, 1.0, testutil.ToFloat64(registry.OrdersDuplicate))
	})

	t.Run("does not count a lost transfer race", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		priorID := kernel.NewUUID()
		payload := map[string]any{"customer_name": "Alice Smith"}
		cmd, _ := commands.NewIntakeOrderCommand(id, payload, "api")

		prior := testOrderWithID(priorID, order.Closed)

		classifier := new(MockClassifier)
		classifier.On("Normalize", ctx, payload).Return(testCandidate(), nil).Once()

		orderRepo := new(MockOrderRepository)
		fingerprintRepo := new(MockFingerprintRepository)
		uow := new(MockIntakeUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			uow.On("FingerprintRepository").Return(fingerprintRepo).Once(),
			fingerprintRepo.On("Reserve", mock.Anything, mock.AnythingOfType("string"), id).
				Return(errs.NewDuplicateOrderError("fp", priorID.String())).Once(),
			orderRepo.On("Get", mock.Anything, priorID).Return(prior, nil).Once(),
			fingerprintRepo.On("Transfer", mock.Anything, mock.AnythingOfType("string"), priorID, id).
				Return(errs.NewConcurrentModificationError("fingerprint", priorID.String())).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockIntakeUoWFactory)
		factory.On("Create").Return(uow).Once()

		registry := metrics.NewRegistry()
		h := commands.NewIntakeOrderCommandHandler(
			factory, classifier, new(MockEventPublisher), new(MockMailer), registry, testLogger(), true)
		_, err := h.Handle(ctx, cmd)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConcurrentModification)
		assert.Equal(t, 0.0, testutil.ToFloat64(registry.OrdersDuplicate))
	})
}
