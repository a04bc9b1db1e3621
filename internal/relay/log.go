package relay

import (
	"context"
	"log/slog"
)

// Log writes orders to the logger and always succeeds. It is meant for
// development without relay credentials.
type Log struct {
	logger *slog.Logger
}

// NewLog creates the driver.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Name returns "log".
func (l *Log) Name() string { return "log" }

// Send logs msg.
func (l *Log) Send(ctx context.Context, msg Message) error {
	if msg.Body == "" {
		return ErrEmptyMessage
	}
	l.logger.InfoContext(ctx, "order message",
		slog.String("reference", msg.Reference),
		slog.String("name", msg.Name),
		slog.String("contact", msg.Contact),
		slog.String("body", msg.Body),
	)
	return nil
}
