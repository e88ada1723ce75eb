package ports

import (
	"context"
	"time"
)

// OutboxMessage is an event stored in the outbox table awaiting publication.
type OutboxMessage struct {
	ID        string
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository gives the relay access to pending outbox messages.
type OutboxRepository interface {
	// ListUnpublished returns up to limit pending messages, oldest first.
	ListUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished flags messages as delivered.
	MarkPublished(ctx context.Context, ids []string, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker. Publish is
// all-or-nothing from the caller's point of view: on error every message is
// retried.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
	Close() error
}
