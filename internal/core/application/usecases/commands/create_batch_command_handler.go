package commands

import (
	"context"
	"log/slog"
	"time"

	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/services"
	"ordercart/internal/pkg/errs"
	"ordercart/internal/pkg/metrics"
)

// CreateBatchResult reports the members actually admitted into the batch.
type CreateBatchResult struct {
	BatchID        kernel.UUID
	MemberIDs      []kernel.UUID
	Dropped        []string
	SavingsMinutes float64
}

// CreateBatchCommandHandler materializes a planner proposal as a batch.
// Proposals are snapshots, so member eligibility is re-verified against
// current state: members that moved on or already belong to an active batch
// are dropped, and the savings estimate is recomputed for the members that
// remain.
type CreateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	registry   *metrics.Registry
	logger     *slog.Logger
}

// NewCreateBatchCommandHandler creates a handler for batch creation.
func NewCreateBatchCommandHandler(
	uowFactory BatchUoWFactory,
	registry *metrics.Registry,
	logger *slog.Logger,
) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		logger:     logger.With("component", "create_batch"),
	}
}

// Handle processes the batch creation command.
// Returns an empty batch error when every proposed member was dropped during
// re-verification.
func (h *CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) (CreateBatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateBatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateBatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	members, err := uow.OrderRepository().GetByIDs(ctx, cmd.MemberIDs())
	if err != nil {
		return CreateBatchResult{}, err
	}

	active, err := uow.BatchRepository().GetAllActive(ctx)
	if err != nil {
		return CreateBatchResult{}, err
	}

	claimed := make(map[string]bool)
	for _, activeBatch := range active {
		for _, id := range activeBatch.MemberIDs() {
			claimed[id.String()] = true
		}
	}

	found := make(map[string]bool, len(members))
	eligible := make([]kernel.UUID, 0, len(members))
	var dropped []string
	for _, member := range members {
		found[member.ID().String()] = true
		switch {
		case member.Status() != services.BatchEligibleStatus:
			dropped = append(dropped, member.ID().String()+": not in "+services.BatchEligibleStatus.String()+" status")
		case claimed[member.ID().String()]:
			dropped = append(dropped, member.ID().String()+": already in an active batch")
		default:
			eligible = append(eligible, member.ID())
		}
	}
	for _, id := range cmd.MemberIDs() {
		if !found[id.String()] {
			dropped = append(dropped, id.String()+": not found")
		}
	}

	if len(eligible) == 0 {
		return CreateBatchResult{}, errs.NewEmptyBatchError(cmd.Strategy().String())
	}

	savings := services.SavingsFor(cmd.Strategy(), len(eligible))
	aggregate, err := batch.NewBatch(
		cmd.BatchID(),
		cmd.Name(),
		cmd.Description(),
		cmd.Strategy(),
		services.BatchEligibleStatus,
		eligible,
		savings,
		time.Now().UTC(),
	)
	if err != nil {
		return CreateBatchResult{}, err
	}

	if err = uow.BatchRepository().Add(ctx, aggregate); err != nil {
		return CreateBatchResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateBatchResult{}, err
	}

	h.registry.BatchesCreated.Inc()
	if len(dropped) > 0 {
		h.logger.Info("dropped stale proposal members",
			"batch_id", cmd.BatchID().String(),
			"dropped", len(dropped))
	}

	return CreateBatchResult{
		BatchID:        aggregate.ID(),
		MemberIDs:      aggregate.MemberIDs(),
		Dropped:        dropped,
		SavingsMinutes: aggregate.SavingsMinutes(),
	}, nil
}
