package orderrepo

import (
	"context"

	"printshop/internal/adapters/out/postgres/dberr"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "order"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its initial history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return dberr.Translate("add order", entity, aggregate.ID(), err)
	}
	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order row and appends the history entries recorded since
// the order was loaded. Persisted entries are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("order_date", "status", "current_step_index", "is_priority", "notes", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate("update order", entity, aggregate.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("update order", entity, aggregate.ID(), gorm.ErrRecordNotFound)
	}
	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its full history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withHistory(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate("get order", entity, id, err)
	}
	return toDomain(dto)
}

// List retrieves every order with its history.
func (r *GormOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withHistory(ctx).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, dberr.Translate("list orders", entity, "*", err)
	}
	return toDomainList(dtos)
}

// ListByClient retrieves the orders placed by a client.
func (r *GormOrderRepository) ListByClient(ctx context.Context, clientID kernel.UUID) ([]*order.Order, error) {
	if err := clientID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.withHistory(ctx).
		Where("client_id = ?", clientID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, dberr.Translate("list client orders", "client", clientID, err)
	}
	return toDomainList(dtos)
}

// Delete removes an order; its items and history go with it.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return dberr.Translate("delete order", entity, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("delete order", entity, id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormOrderRepository) appendHistory(ctx context.Context, aggregate *order.Order) error {
	rows := uncommittedHistory(aggregate)
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return dberr.Translate("append order history", entity, aggregate.ID(), err)
	}
	aggregate.MarkHistoryCommitted()
	return nil
}

func (r *GormOrderRepository) withHistory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
