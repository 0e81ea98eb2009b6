package ports

import (
	"context"

	"ordercart/internal/core/domain/model/kernel"
)

// FingerprintRepository defines the reservation contract for order content
// fingerprints. A fingerprint maps to at most one order at any time; the
// reservation is the linearization point for duplicate detection.
type FingerprintRepository interface {
	// Reserve claims the fingerprint for the given order. When the
	// fingerprint is already held by another order a duplicate order
	// error carrying the prior order's identifier is returned.
	Reserve(ctx context.Context, fingerprint string, orderID kernel.UUID) error

	// Owner returns the identifier of the order currently holding the
	// fingerprint.
	Owner(ctx context.Context, fingerprint string) (kernel.UUID, error)

	// Transfer moves an existing reservation from one order to another.
	// Used when a terminal order's fingerprint is released to a reorder.
	Transfer(ctx context.Context, fingerprint string, from kernel.UUID, to kernel.UUID) error
}
