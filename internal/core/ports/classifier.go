package ports

import (
	"context"

	"ordercart/internal/core/domain/model/order"
)

// ExceptionAnalysis is the classifier's diagnosis of a failed or stuck order.
type ExceptionAnalysis struct {
	Category        order.Category
	RootCause       string
	SuggestedAction string
	Priority        string
}

// Message is a drafted customer notification.
type Message struct {
	Subject string
	Body    string
}

// Classifier defines the contract for AI-assisted normalization, exception
// diagnosis, and message drafting. Implementations must degrade gracefully:
// when the backing service is unavailable a deterministic fallback answer is
// returned, never an error that would block the pipeline.
type Classifier interface {
	// Normalize maps free-form intake payload fields onto a structured
	// order candidate.
	Normalize(ctx context.Context, payload map[string]any) (order.Candidate, error)

	// ClassifyException diagnoses the order's active exception.
	ClassifyException(ctx context.Context, aggregate *order.Order) (ExceptionAnalysis, error)

	// DraftMessage drafts a customer-facing notification about the
	// order's current state.
	DraftMessage(ctx context.Context, aggregate *order.Order, reason string) (Message, error)
}
