package queries

import (
	"context"
	"time"

	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/core/domain/services"
)

// OrderReader loads full order aggregates for planning. The planner inspects
// shipping addresses, items and ages, so a flat projection is not enough here.
type OrderReader interface {
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}

// SuggestBatchesQueryHandler feeds eligible orders through the batch planner
// and returns its proposals. Read-only: no batch rows are written.
type SuggestBatchesQueryHandler struct {
	orders  OrderReader
	planner services.BatchPlanner
}

// NewSuggestBatchesQueryHandler creates a handler for batch proposal queries.
func NewSuggestBatchesQueryHandler(orders OrderReader) SuggestBatchesQueryHandler {
	return SuggestBatchesQueryHandler{
		orders:  orders,
		planner: services.NewBatchPlanner(),
	}
}

// Handle plans proposals over every order currently in the eligible status.
func (h SuggestBatchesQueryHandler) Handle(
	ctx context.Context,
	query SuggestBatchesQuery,
) ([]SuggestBatchesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	eligible, err := h.orders.GetAllInStatus(ctx, services.BatchEligibleStatus)
	if err != nil {
		return nil, err
	}

	proposals, err := h.planner.Suggest(query.Strategy(), eligible, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	responses := make([]SuggestBatchesQueryResponse, 0, len(proposals))
	for _, proposal := range proposals {
		responses = append(responses, SuggestBatchesQueryResponse{
			Name:           proposal.Name,
			Description:    proposal.Description,
			Strategy:       proposal.Strategy.String(),
			MemberOrderIDs: proposal.MemberOrderIDs,
			SavingsMinutes: proposal.SavingsMinutes,
		})
	}

	return responses, nil
}
