package commands_test

import (
	"testing"
	"time"

	"ordercart/internal/core/application/usecases/commands"
	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemberUoW(t *testing.T, repo *MockOrderRepository) *MockOrderUoW {
	t.Helper()
	uow := new(MockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	return uow
}

func TestBulkTransitionCommandHandler_Handle_AllMembersTransition(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()
	first := testOrder(order.Validated)
	second := testOrder(order.Validated)

	aggregate, err := batch.NewBatch(
		batchID, "Springfield, IL orders", "", batch.StrategyRegion, order.Validated,
		[]kernel.UUID{first.ID(), second.ID()}, 2.0, time.Now().UTC())
	require.NoError(t, err)

	cmd, _ := commands.NewBulkTransitionCommand(batchID, order.Processing, "ops")

	memberRepo := new(MockOrderRepository)
	memberRepo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	memberRepo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()
	memberRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Twice()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(newMemberUoW(t, memberRepo)).Once()
	orderFactory.On("Create").Return(newMemberUoW(t, memberRepo)).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()

	batchRepo := new(MockBatchRepository)
	batchRepo.On("Get", mock.Anything, batchID).Return(aggregate, nil).Twice()
	batchRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	sweepRepo := new(MockOrderRepository)
	sweepRepo.On("GetByIDs", mock.Anything, aggregate.MemberIDs()).
		Return([]*order.Order{first, second}, nil).Once()

	loadUoW := new(MockBatchUoW)
	loadUoW.On("Begin", mock.Anything).Return(nil).Once()
	loadUoW.On("BatchRepository").Return(batchRepo).Once()
	loadUoW.On("Commit", mock.Anything).Return(nil).Once()
	loadUoW.On("Rollback", mock.Anything).Return(nil).Once()

	retireUoW := new(MockBatchUoW)
	retireUoW.On("Begin", mock.Anything).Return(nil).Once()
	retireUoW.On("OrderRepository").Return(sweepRepo).Once()
	retireUoW.On("BatchRepository").Return(batchRepo).Twice()
	retireUoW.On("Commit", mock.Anything).Return(nil).Once()
	retireUoW.On("Rollback", mock.Anything).Return(nil).Once()

	batchFactory := new(MockBatchUoWFactory)
	batchFactory.On("Create").Return(loadUoW).Once()
	batchFactory.On("Create").Return(retireUoW).Once()

	transitions := commands.NewTransitionOrderCommandHandler(
		orderFactory, new(MockClassifier), publisher, new(MockMailer), metrics.NewRegistry(), testLogger())
	h := commands.NewBulkTransitionCommandHandler(batchFactory, transitions, testLogger())

	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, "ok", result.Results[first.ID().String()])
	assert.Equal(t, "ok", result.Results[second.ID().String()])
	assert.True(t, result.BatchRetired)
	assert.True(t, aggregate.IsRetired())
	assert.Equal(t, order.Processing, first.Status())
	assert.Equal(t, order.Processing, second.Status())
}

func TestBulkTransitionCommandHandler_Handle_MemberFailureDoesNotBlockOthers(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()
	healthy := testOrder(order.Validated)
	movedOn := testOrder(order.Shipped)

	aggregate, err := batch.NewBatch(
		batchID, "urgent orders (over 6h)", "", batch.StrategyUrgency, order.Validated,
		[]kernel.UUID{healthy.ID(), movedOn.ID()}, 3.0, time.Now().UTC())
	require.NoError(t, err)

	cmd, _ := commands.NewBulkTransitionCommand(batchID, order.Processing, "ops")

	memberRepo := new(MockOrderRepository)
	memberRepo.On("Get", mock.Anything, healthy.ID()).Return(healthy, nil).Once()
	memberRepo.On("Get", mock.Anything, movedOn.ID()).Return(movedOn, nil).Once()
	memberRepo.On("Update", mock.Anything, healthy).Return(nil).Once()

	orderFactory := new(MockOrderUoWFactory)
	orderFactory.On("Create").Return(newMemberUoW(t, memberRepo)).Once()
	orderFactory.On("Create").Return(newMemberUoW(t, memberRepo)).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	batchRepo := new(MockBatchRepository)
	batchRepo.On("Get", mock.Anything, batchID).Return(aggregate, nil).Twice()
	batchRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	sweepRepo := new(MockOrderRepository)
	sweepRepo.On("GetByIDs", mock.Anything, aggregate.MemberIDs()).
		Return([]*order.Order{healthy, movedOn}, nil).Once()

	loadUoW := new(MockBatchUoW)
	loadUoW.On("Begin", mock.Anything).Return(nil).Once()
	loadUoW.On("BatchRepository").Return(batchRepo).Once()
	loadUoW.On("Commit", mock.Anything).Return(nil).Once()
	loadUoW.On("Rollback", mock.Anything).Return(nil).Once()

	retireUoW := new(MockBatchUoW)
	retireUoW.On("Begin", mock.Anything).Return(nil).Once()
	retireUoW.On("OrderRepository").Return(sweepRepo).Once()
	retireUoW.On("BatchRepository").Return(batchRepo).Twice()
	retireUoW.On("Commit", mock.Anything).Return(nil).Once()
	retireUoW.On("Rollback", mock.Anything).Return(nil).Once()

	batchFactory := new(MockBatchUoWFactory)
	batchFactory.On("Create").Return(loadUoW).Once()
	batchFactory.On("Create").Return(retireUoW).Once()

	transitions := commands.NewTransitionOrderCommandHandler(
		orderFactory, new(MockClassifier), publisher, new(MockMailer), metrics.NewRegistry(), testLogger())
	h := commands.NewBulkTransitionCommandHandler(batchFactory, transitions, testLogger())

	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "ok", result.Results[healthy.ID().String()])
	assert.Contains(t, result.Results[movedOn.ID().String()], "invalid transition")
	assert.True(t, result.BatchRetired)
}

func TestBulkTransitionCommandHandler_Handle_RetiredBatch(t *testing.T) {
	ctx := t.Context()
	batchID := kernel.NewUUID()
	member := testOrder(order.Validated)

	aggregate, err := batch.NewBatch(
		batchID, "stale", "", batch.StrategyRegion, order.Validated,
		[]kernel.UUID{member.ID()}, 0, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, aggregate.Retire(time.Now().UTC()))

	cmd, _ := commands.NewBulkTransitionCommand(batchID, order.Processing, "ops")

	batchRepo := new(MockBatchRepository)
	batchRepo.On("Get", mock.Anything, batchID).Return(aggregate, nil).Once()

	loadUoW := new(MockBatchUoW)
	loadUoW.On("Begin", mock.Anything).Return(nil).Once()
	loadUoW.On("BatchRepository").Return(batchRepo).Once()
	loadUoW.On("Commit", mock.Anything).Return(nil).Once()
	loadUoW.On("Rollback", mock.Anything).Return(nil).Once()

	batchFactory := new(MockBatchUoWFactory)
	batchFactory.On("Create").Return(loadUoW).Once()

	transitions := commands.NewTransitionOrderCommandHandler(
		new(MockOrderUoWFactory), new(MockClassifier), new(MockEventPublisher), new(MockMailer),
		metrics.NewRegistry(), testLogger())
	h := commands.NewBulkTransitionCommandHandler(batchFactory, transitions, testLogger())

	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, batch.ErrBatchAlreadyRetired)
}
