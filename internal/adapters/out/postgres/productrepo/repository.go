package productrepo

import (
	"context"

	"printshop/internal/adapters/out/postgres/dberr"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/product"

	"gorm.io/gorm"
)

const entity = "product"

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	err := r.db.WithContext(ctx).Create(&dto).Error
	return dberr.Translate("add product", entity, p.ID(), err)
}

func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "description", "process_steps").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate("update product", entity, p.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("update product", entity, p.ID(), gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate("get product", entity, id, err)
	}
	return toDomain(dto)
}

// List returns the catalogue ordered by name.
func (r *GormProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, dberr.Translate("list products", entity, "*", err)
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Delete removes the product. The store refuses it while order items
// reference the product.
func (r *GormProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ProductDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return dberr.Translate("delete product", entity, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("delete product", entity, id, gorm.ErrRecordNotFound)
	}
	return nil
}
