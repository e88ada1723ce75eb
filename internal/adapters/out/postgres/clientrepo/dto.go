// Package clientrepo persists clients.
package clientrepo

import (
	"time"

	"printshop/internal/core/domain/model/client"
	"printshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClientDTO is the row of the clients table.
type ClientDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string    `gorm:"type:varchar(255);not null;index"`
	Phone     string    `gorm:"type:varchar(64);not null"`
	Email     *string   `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

func fromDomain(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:       c.ID().Bytes(),
		FullName: c.FullName(),
		Phone:    c.Phone(),
		Email:    c.Email(),
	}
}

func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return client.RestoreClient(id, dto.FullName, dto.Phone, dto.Email)
}
