package outboxrepo

import (
	"context"
	"time"

	"printshop/internal/adapters/out/postgres/dberr"
	"printshop/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entity = "outbox message"

// GormOutboxRepository implements ports.OutboxRepository and the write side
// used by the unit of work.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores messages for later publication.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		dto, err := fromPort(m)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}
	err := r.db.WithContext(ctx).Create(&dtos).Error
	return dberr.Translate("add outbox messages", entity, messages[0].ID, err)
}

// ListUnpublished returns up to limit pending messages, oldest first.
func (r *GormOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, dberr.Translate("list outbox messages", entity, "*", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toPort(dto))
	}
	return messages, nil
}

// MarkPublished flags messages as delivered at the given time.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		key, err := uuid.Parse(id)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}

	err := r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id IN ?", keys).
		Update("published_at", at.UTC()).Error
	return dberr.Translate("mark outbox messages published", entity, ids[0], err)
}
