// Package smtp delivers customer notifications through an SMTP relay.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"ordercart/internal/core/domain/model/kernel"
)

// Mailer sends plain-text mail over SMTP with optional AUTH. Implements
// ports.Mailer. An empty username disables authentication for relays that
// accept unauthenticated local mail.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewMailer creates a mailer for the relay at host:port sending as from.
func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{
		host: host,
		port: port,
		user: user,
		pass: pass,
		from: from,
	}
}

// Send delivers one message and returns a locally generated receipt id.
// net/smtp does not support cancellation mid-send, so the context only gates entry.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	receiptID := fmt.Sprintf("%s@%s", kernel.NewUUID(), m.host)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Message-ID: <%s>\r\n", receiptID)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return "", err
	}
	return receiptID, nil
}
