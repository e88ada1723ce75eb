package clientrepo

import (
	"context"

	"printshop/internal/adapters/out/postgres/dberr"
	"printshop/internal/core/domain/model/client"
	"printshop/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

const entity = "client"

// GormClientRepository implements ports.ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Add(ctx context.Context, c *client.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	err := r.db.WithContext(ctx).Create(&dto).Error
	return dberr.Translate("add client", entity, c.ID(), err)
}

func (r *GormClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate("get client", entity, id, err)
	}
	return toDomain(dto)
}

// List returns all clients ordered by full name.
func (r *GormClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	var dtos []ClientDTO
	if err := r.db.WithContext(ctx).Order("full_name, id").Find(&dtos).Error; err != nil {
		return nil, dberr.Translate("list clients", entity, "*", err)
	}

	clients := make([]*client.Client, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// Delete removes the client. Orders still referencing it make the store
// refuse the delete with a referential conflict.
func (r *GormClientRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ClientDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return dberr.Translate("delete client", entity, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.Translate("delete client", entity, id, gorm.ErrRecordNotFound)
	}
	return nil
}
