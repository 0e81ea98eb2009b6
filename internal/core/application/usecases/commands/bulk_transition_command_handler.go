package commands

import (
	"context"
	"log/slog"
	"time"

	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
)

// BulkTransitionResult reports the per-member outcome of a batch transition.
// Results maps each member order ID to "ok" or the failure reason.
type BulkTransitionResult struct {
	BatchID      kernel.UUID
	Succeeded    int
	Failed       int
	Results      map[string]string
	BatchRetired bool
}

// BulkTransitionCommandHandler fans a batch transition out to its members.
// Each member transitions in its own transaction through the single-order
// handler: one member's failure (invalid transition, concurrent
// modification) never blocks the others, and there is no batch-wide lock.
type BulkTransitionCommandHandler struct {
	uowFactory  BatchUoWFactory
	transitions TransitionOrderCommandHandler
	logger      *slog.Logger
}

// NewBulkTransitionCommandHandler creates a handler for batch transitions.
func NewBulkTransitionCommandHandler(
	uowFactory BatchUoWFactory,
	transitions TransitionOrderCommandHandler,
	logger *slog.Logger,
) BulkTransitionCommandHandler {
	return BulkTransitionCommandHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		logger:      logger.With("component", "bulk_transition"),
	}
}

// Handle processes the bulk transition command.
// Members that already moved past the batch's eligible status simply fail
// their own transition and are reported as such. When no member remains in
// the eligible status after the sweep, the batch is retired.
func (h *BulkTransitionCommandHandler) Handle(ctx context.Context, cmd BulkTransitionCommand) (BulkTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkTransitionResult{}, err
	}

	aggregate, err := h.loadBatch(ctx, cmd.BatchID())
	if err != nil {
		return BulkTransitionResult{}, err
	}
	if aggregate.IsRetired() {
		return BulkTransitionResult{}, batch.ErrBatchAlreadyRetired
	}

	result := BulkTransitionResult{
		BatchID: cmd.BatchID(),
		Results: make(map[string]string, len(aggregate.MemberIDs())),
	}

	for _, memberID := range aggregate.MemberIDs() {
		memberCmd, cmdErr := NewTransitionOrderCommand(memberID, cmd.Target(), cmd.Actor())
		if cmdErr != nil {
			result.Failed++
			result.Results[memberID.String()] = cmdErr.Error()
			continue
		}

		if _, handleErr := h.transitions.Handle(ctx, memberCmd); handleErr != nil {
			result.Failed++
			result.Results[memberID.String()] = handleErr.Error()
			continue
		}

		result.Succeeded++
		result.Results[memberID.String()] = "ok"
	}

	retired, err := h.retireIfExhausted(ctx, aggregate)
	if err != nil {
		h.logger.Error("failed to retire batch", "batch_id", cmd.BatchID().String(), "error", err)
	}
	result.BatchRetired = retired

	return result, nil
}

func (h *BulkTransitionCommandHandler) loadBatch(ctx context.Context, batchID kernel.UUID) (*batch.Batch, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.BatchRepository().Get(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// retireIfExhausted retires the batch once no member remains in the batch's
// eligible status. Reads the members' current state in a fresh transaction
// since each member moved independently.
func (h *BulkTransitionCommandHandler) retireIfExhausted(ctx context.Context, aggregate *batch.Batch) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	members, err := uow.OrderRepository().GetByIDs(ctx, aggregate.MemberIDs())
	if err != nil {
		return false, err
	}

	for _, member := range members {
		if member.Status() == aggregate.EligibleStatus() {
			return false, nil
		}
	}

	current, err := uow.BatchRepository().Get(ctx, aggregate.ID())
	if err != nil {
		return false, err
	}
	if current.IsRetired() {
		return true, nil
	}

	if err = current.Retire(time.Now().UTC()); err != nil {
		return false, err
	}

	if err = uow.BatchRepository().Update(ctx, current); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
