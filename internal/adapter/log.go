package adapter

import (
	"context"

	"github.com/MKhiriev/go-blog/internal/logger"
)

// logMailer writes messages to the log instead of delivering them. The body
// carries the link, so it is only meant for local development.
type logMailer struct {
	from   string
	logger *logger.Logger
}

func NewLogMailer(from string, logger *logger.Logger) Mailer {
	return &logMailer{from: from, logger: logger}
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	m.logger.Info().
		Str("from", m.from).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail")
	return nil
}
