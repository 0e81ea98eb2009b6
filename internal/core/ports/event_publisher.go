package ports

import (
	"context"
	"time"

	"ordercart/internal/core/domain/model/kernel"
)

// Event types emitted by the order pipeline.
const (
	EventOrderAdmitted        = "order.admitted"
	EventOrderRejected        = "order.rejected"
	EventOrderStatusChanged   = "order.status_changed"
	EventOrderExceptionRaised = "order.exception_raised"
)

// Event is an audit record of something that happened to an order. Events are
// published after the owning transaction commits; publishing is best-effort
// and never rolls the business operation back.
type Event struct {
	OrderID    kernel.UUID
	EventType  string
	OccurredAt time.Time
	Payload    map[string]any
}

// EventPublisher defines the outbound messaging contract for pipeline events.
type EventPublisher interface {
	// Publish sends the event to the message bus.
	Publish(ctx context.Context, event Event) error
}
