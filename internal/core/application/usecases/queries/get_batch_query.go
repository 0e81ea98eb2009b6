package queries

import (
	"errors"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/guard"
)

var (
	ErrGetBatchQueryIsNotConstructed = errors.New(
		"GetBatchQuery must be created via NewGetBatchQuery constructor",
	)
)

// GetBatchQuery retrieves one batch with its membership roster.
//
// Example:
//
//	query, err := NewGetBatchQuery(batchID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetBatchQueryHandler(db)
//
//	batch, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get batch: %w", err)
//	}
type GetBatchQuery struct {
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBatchQuery creates a query for a single batch by its identifier.
func NewGetBatchQuery(batchID kernel.UUID) (GetBatchQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetBatchQuery{}, err
	}
	return GetBatchQuery{
		batchID: batchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// BatchID returns the identifier of the requested batch.
func (q GetBatchQuery) BatchID() kernel.UUID {
	return q.batchID
}

// Validate ensures the query was created through the constructor.
func (q GetBatchQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchQueryIsNotConstructed)
}

// GetBatchQueryResponse describes a batch and its members.
type GetBatchQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Description    string
	Strategy       string
	EligibleStatus string
	MemberIDs      []kernel.UUID
	SavingsMinutes float64
	CreatedAt      time.Time
	RetiredAt      *time.Time
}
