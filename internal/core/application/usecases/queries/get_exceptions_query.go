package queries

import (
	"errors"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/pkg/guard"
)

var (
	ErrGetExceptionsQueryIsNotConstructed = errors.New(
		"GetExceptionsQuery must be created via NewGetExceptionsQuery constructor",
	)
)

// GetExceptionsQuery retrieves all orders currently parked in the exception
// state, together with their open exception records. Used by operations staff
// to work the exception queue.
//
// Example:
//
//	query := NewGetExceptionsQuery()
//	handler := NewGetExceptionsQueryHandler(db)
//
//	exceptions, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list exceptions: %w", err)
//	}
//
//	for _, exc := range exceptions {
//	    fmt.Printf("Order %s: %s\n", exc.OrderID, exc.Category)
//	}
type GetExceptionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetExceptionsQuery creates a query for the open exception queue.
// This is a parameterless query that fetches every order in exception status.
func NewGetExceptionsQuery() GetExceptionsQuery {
	return GetExceptionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetExceptionsQuery) Validate() error {
	return q.guard.Validate(ErrGetExceptionsQueryIsNotConstructed)
}

// GetExceptionsQueryResponse describes one open exception.
// Analysis fields are empty until an analysis has been attached.
type GetExceptionsQueryResponse struct {
	OrderID         kernel.UUID
	CustomerName    string
	CustomerEmail   string
	Category        string
	Reasons         []string
	RootCause       string
	SuggestedAction string
	Priority        string
	RaisedAt        time.Time
}
