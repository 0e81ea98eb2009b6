// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, event publishing, outbound
// mail, and the AI classifier. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"

	"ordercart/internal/core/domain/model/kernel"
	"ordercart/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their lifecycle status.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The update is conditioned on the version the aggregate was loaded
	// with: a concurrent modification error is returned when the stored
	// version has moved on.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status, validation
	// result, and exception record.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIDs retrieves the orders for the given identifiers. Missing
	// identifiers are skipped, not errors.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// oldest first.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
