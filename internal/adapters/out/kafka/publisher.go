// Package kafka publishes pipeline events to a Kafka topic.
//
// Events are keyed by order ID so every event for one order lands on the same
// partition and consumers observe them in emission order.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"ordercart/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// eventEnvelope is the wire shape of a published event.
type eventEnvelope struct {
	OrderID    string         `json:"order_id"`
	EventType  string         `json:"event_type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Publisher sends pipeline events to Kafka. Implements ports.EventPublisher.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher writing to the given topic on host.
func NewPublisher(host, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(host),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish sends the event to the topic. The caller decides whether a publish
// failure is fatal; command handlers treat it as best-effort.
func (p *Publisher) Publish(ctx context.Context, event ports.Event) error {
	value, err := json.Marshal(eventEnvelope{
		OrderID:    event.OrderID.String(),
		EventType:  event.EventType,
		OccurredAt: event.OccurredAt,
		Payload:    event.Payload,
	})
	if err != nil {
		return err
	}

	rawID := event.OrderID.Bytes()
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   rawID[:],
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
}

// Close flushes and shuts down the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
