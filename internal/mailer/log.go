package mailer

import (
	"context"
	"log/slog"

	"bridgeforum/internal/middleware"
)

// LogMailer writes messages to the structured log instead of delivering them.
type LogMailer struct {
	from string
}

// NewLogMailer is used in development and tests.
func NewLogMailer(from string) *LogMailer {
	return &LogMailer{from: from}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	middleware.Logger.InfoContext(ctx, "email (log driver)",
		slog.String("from", m.from),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
