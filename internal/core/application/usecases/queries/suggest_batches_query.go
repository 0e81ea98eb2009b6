package queries

import (
	"errors"

	"ordercart/internal/core/domain/model/batch"
	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/guard"
)

var (
	ErrSuggestBatchesQueryIsNotConstructed = errors.New(
		"SuggestBatchesQuery must be created via NewSuggestBatchesQuery constructor",
	)
)

// SuggestBatchesQuery asks the planner for batch proposals under a grouping
// strategy. Proposals are advisory snapshots; nothing is persisted and
// membership is re-verified if a proposal is later turned into a batch.
//
// Example:
//
//	query, err := NewSuggestBatchesQuery("region")
//	if err != nil {
//	    return err
//	}
//
//	proposals, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to suggest batches: %w", err)
//	}
type SuggestBatchesQuery struct {
	strategy batch.Strategy

	guard guard.ConstructorGuard
}

// NewSuggestBatchesQuery creates a proposal query for the named strategy.
func NewSuggestBatchesQuery(strategy string) (SuggestBatchesQuery, error) {
	parsed, err := batch.StrategyFromString(strategy)
	if err != nil {
		return SuggestBatchesQuery{}, err
	}
	return SuggestBatchesQuery{
		strategy: parsed,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Strategy returns the grouping strategy to plan under.
func (q SuggestBatchesQuery) Strategy() batch.Strategy {
	return q.strategy
}

// Validate ensures the query was created through the constructor.
func (q SuggestBatchesQuery) Validate() error {
	return q.guard.Validate(ErrSuggestBatchesQueryIsNotConstructed)
}

// SuggestBatchesQueryResponse is one advisory proposal.
type SuggestBatchesQueryResponse struct {
	Name           string
	Description    string
	Strategy       string
	MemberOrderIDs []kernel.UUID
	SavingsMinutes float64
}
