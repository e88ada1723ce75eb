package commands

import (
	"context"
	"time"

	"printshop/internal/core/ports"
)

// RelayOutboxCommandHandler publishes one batch of unpublished outbox
// messages, oldest first, and marks them published. When publication fails
// nothing is marked and the whole batch is retried by the next run, so
// consumers must tolerate duplicates.
type RelayOutboxCommandHandler struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	now       func() time.Time
}

func NewRelayOutboxCommandHandler(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	now func() time.Time,
) RelayOutboxCommandHandler {
	if now == nil {
		now = time.Now
	}
	return RelayOutboxCommandHandler{outbox: outbox, publisher: publisher, now: now}
}

// Handle returns the number of messages published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	messages, err := h.outbox.ListUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err = h.outbox.MarkPublished(ctx, ids, h.now()); err != nil {
		return 0, err
	}
	return len(messages), nil
}
