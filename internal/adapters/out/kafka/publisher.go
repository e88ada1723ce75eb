// Package kafka publishes outbox messages to Kafka.
package kafka

import (
	"context"
	"time"

	"printshop/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const messageIDHeader = "message-id"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes outbox messages to their topic, keyed by order id so that
// the changes of one order stay on one partition in publication order.
type Publisher struct {
	w messageWriter
}

// NewPublisher creates a publisher on the given brokers. The topic comes from
// each message.
func NewPublisher(brokers []string) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            5,
		WriteTimeout:           5 * time.Second,
		ReadTimeout:            5 * time.Second,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	})
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{w: w}
}

// Publish writes the messages synchronously as one batch.
func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Topic: m.Topic,
			Key:   []byte(m.Key),
			Value: m.Payload,
			Time:  m.CreatedAt,
			Headers: []kafka.Header{
				{Key: messageIDHeader, Value: []byte(m.ID)},
			},
		})
	}
	return p.w.WriteMessages(ctx, batch...)
}

func (p *Publisher) Close() error { return p.w.Close() }

var _ ports.EventPublisher = (*Publisher)(nil)
