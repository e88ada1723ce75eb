package orderitemrepo

import (
	"context"

	"printshop/internal/adapters/out/postgres/dberr"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "order item"

// GormOrderItemRepository implements ports.OrderItemRepository using GORM.
type GormOrderItemRepository struct {
	db *gorm.DB
}

func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// Add saves a new item. Unknown order or product ids are reported as a
// referential conflict.
func (r *GormOrderItemRepository) Add(ctx context.Context, item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
	return dberr.Translate("add order item", entity, item.ID(), err)
}

func (r *GormOrderItemRepository) Update(ctx context.Context, item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ?", dto.ID).
		Select("quantity", "notes", "status", "step_index").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate("update order item", entity, item.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("update order item", entity, item.ID(), gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormOrderItemRepository) Get(ctx context.Context, id kernel.UUID) (*order.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate("get order item", entity, id, err)
	}
	return toDomain(dto)
}

// ListByOrder returns the items of an order in creation order.
func (r *GormOrderItemRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Item, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, dberr.Translate("list order items", "order", orderID, err)
	}
	return toDomainList(dtos)
}

func (r *GormOrderItemRepository) ListByProduct(ctx context.Context, productID kernel.UUID) ([]*order.Item, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ItemDTO
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, dberr.Translate("list order items", "product", productID, err)
	}
	return toDomainList(dtos)
}

func (r *GormOrderItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return dberr.Translate("delete order item", entity, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("delete order item", entity, id, gorm.ErrRecordNotFound)
	}
	return nil
}

func toDomainList(dtos []ItemDTO) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
