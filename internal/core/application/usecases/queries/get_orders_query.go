package queries

import (
	"errors"
	"time"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
	"ordercart/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

const (
	defaultOrdersLimit = 100
	maxOrdersLimit     = 500
)

// GetOrdersQuery retrieves order summaries, optionally filtered by lifecycle
// status. Results are paginated by a simple limit; callers needing the full
// aggregate should load it through the repository instead.
//
// Example:
//
//	query, err := NewGetOrdersQuery("validated", 50)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//
//	fmt.Printf("Found %d orders\n", len(orders))
type GetOrdersQuery struct {
	statusFilter *order.Status
	limit        int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for order summaries. statusFilter may be
// empty to list orders in every status. A non-positive limit falls back to
// the default; limits above the cap are clamped.
func NewGetOrdersQuery(statusFilter string, limit int) (GetOrdersQuery, error) {
	query := GetOrdersQuery{guard: guard.NewConstructorGuard()}

	if statusFilter != "" {
		status, err := order.StatusFromString(statusFilter)
		if err != nil {
			return GetOrdersQuery{}, err
		}
		query.statusFilter = &status
	}

	if limit <= 0 {
		limit = defaultOrdersLimit
	}
	if limit > maxOrdersLimit {
		limit = maxOrdersLimit
	}
	query.limit = limit

	return query, nil
}

// StatusFilter returns the requested status filter, or nil for all statuses.
func (q GetOrdersQuery) StatusFilter() *order.Status {
	return q.statusFilter
}

// Limit returns the maximum number of rows to return.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// GetOrdersQueryResponse is a flat order summary for listings.
type GetOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomerName  string
	CustomerEmail string
	Status        string
	PaymentTotal  float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}
