// Package eventlog is the event publisher used when no message broker is
// configured: outbox messages are written to the structured log.
package eventlog

import (
	"context"
	"encoding/json"
	"log/slog"

	"printshop/internal/core/ports"
)

type Publisher struct {
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "EventLog")}
}

func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	for _, m := range messages {
		p.logger.InfoContext(ctx, "order changed",
			"message_id", m.ID,
			"topic", m.Topic,
			"key", m.Key,
			"created_at", m.CreatedAt,
			"payload", json.RawMessage(m.Payload),
		)
	}
	return nil
}

func (p *Publisher) Close() error { return nil }

var _ ports.EventPublisher = (*Publisher)(nil)
