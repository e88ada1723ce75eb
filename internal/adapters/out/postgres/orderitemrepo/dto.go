// Package orderitemrepo persists order items.
package orderitemrepo

import (
	"time"

	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/adapters/out/postgres/productrepo"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// ItemDTO is the row of the order_items table. Items are removed with their
// order; a referenced product cannot be deleted.
type ItemDTO struct {
	ID        uuid.UUID               `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	Order     *orderrepo.OrderDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductID uuid.UUID               `gorm:"type:uuid;not null;index"`
	Product   *productrepo.ProductDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int                     `gorm:"not null"`
	Notes     *string                 `gorm:"type:text"`
	Status    string                  `gorm:"type:varchar(32);not null;index"`
	StepIndex *int
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(item *order.Item) ItemDTO {
	return ItemDTO{
		ID:        item.ID().Bytes(),
		OrderID:   item.OrderID().Bytes(),
		ProductID: item.ProductID().Bytes(),
		Quantity:  item.Quantity(),
		Notes:     item.Notes(),
		Status:    item.Status().String(),
		StepIndex: item.StepIndex(),
		CreatedAt: item.CreatedAt(),
	}
}

func toDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(id, orderID, productID, dto.Quantity, dto.Notes, status, dto.StepIndex, dto.CreatedAt)
}
