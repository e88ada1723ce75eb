// Package productrepo persists catalogue products with their process steps.
package productrepo

import (
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO is the row of the products table. Process steps are stored as a
// JSON array in their execution order.
type ProductDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null;index"`
	Description  *string   `gorm:"type:text"`
	ProcessSteps []string  `gorm:"type:text;serializer:json;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID().Bytes(),
		Name:         p.Name(),
		Description:  p.Description(),
		ProcessSteps: p.Steps(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Name, dto.Description, dto.ProcessSteps)
}
