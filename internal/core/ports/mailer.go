package ports

import (
	"context"
)

// Mailer defines the outbound customer notification contract. Sending is
// best-effort: a failed send is logged and surfaced to the caller but never
// rolls back the business operation that triggered it.
type Mailer interface {
	// Send delivers the message and returns a provider receipt identifier.
	Send(ctx context.Context, to string, subject string, body string) (string, error)
}
