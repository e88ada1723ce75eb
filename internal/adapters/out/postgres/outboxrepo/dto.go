// Package outboxrepo stores order-changed events written in the same
// transaction as the orders they describe, until the relay publishes them.
package outboxrepo

import (
	"time"

	"printshop/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is the row of the outbox_messages table.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Topic       string     `gorm:"type:varchar(255);not null"`
	Key         string     `gorm:"type:varchar(255);not null"`
	Payload     []byte     `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromPort(m ports.OutboxMessage) (MessageDTO, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return MessageDTO{}, err
	}
	return MessageDTO{
		ID:        id,
		Topic:     m.Topic,
		Key:       m.Key,
		Payload:   m.Payload,
		CreatedAt: m.CreatedAt,
	}, nil
}

func toPort(dto MessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:        dto.ID.String(),
		Topic:     dto.Topic,
		Key:       dto.Key,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt,
	}
}
