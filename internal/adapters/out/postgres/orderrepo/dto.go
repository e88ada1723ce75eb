// Package orderrepo persists orders together with their append-only status
// history.
package orderrepo

import (
	"time"

	"printshop/internal/adapters/out/postgres/clientrepo"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table. Deleting a client that still has
// orders is refused; deleting an order removes its history.
type OrderDTO struct {
	ID               uuid.UUID             `gorm:"type:uuid;primaryKey"`
	ClientID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	Client           *clientrepo.ClientDTO `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	OrderDate        time.Time             `gorm:"not null;index"`
	Status           string                `gorm:"type:varchar(32);not null;index"`
	CurrentStepIndex int                   `gorm:"not null;default:0"`
	IsPriority       bool                  `gorm:"not null;default:false"`
	Notes            *string               `gorm:"type:text"`
	History          []HistoryEntryDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time             `gorm:"autoCreateTime:false;not null"`
	UpdatedAt        time.Time             `gorm:"autoUpdateTime:false;not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryEntryDTO is one row of order_history. Seq is the position of the
// entry in the order's history and is unique per order.
type HistoryEntryDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_history_seq"`
	Seq       int       `gorm:"not null;uniqueIndex:idx_order_history_seq"`
	Step      string    `gorm:"type:varchar(255);not null"`
	Status    string    `gorm:"type:varchar(32);not null"`
	Notes     *string   `gorm:"type:text"`
	Timestamp time.Time `gorm:"not null"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain maps the order row only; history rows are written separately
// because they are append-only.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:               o.ID().Bytes(),
		ClientID:         o.ClientID().Bytes(),
		OrderDate:        o.OrderDate().UTC(),
		Status:           o.Status().String(),
		CurrentStepIndex: o.CurrentStepIndex(),
		IsPriority:       o.IsPriority(),
		Notes:            o.Notes(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

// uncommittedHistory maps the entries appended since the order was loaded.
func uncommittedHistory(o *order.Order) []HistoryEntryDTO {
	entries := o.UncommittedHistory()
	offset := o.CommittedHistoryLength()

	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for i, e := range entries {
		dtos = append(dtos, HistoryEntryDTO{
			OrderID:   o.ID().Bytes(),
			Seq:       offset + i,
			Step:      e.Step(),
			Status:    e.Status().String(),
			Notes:     e.Notes(),
			Timestamp: e.Timestamp(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		entry, entryErr := historyToDomain(h)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(id, clientID, dto.OrderDate, status, dto.CurrentStepIndex, dto.IsPriority,
		dto.Notes, history, dto.CreatedAt, dto.UpdatedAt)
}

func historyToDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	var notes string
	if dto.Notes != nil {
		notes = *dto.Notes
	}
	return order.NewHistoryEntry(dto.Step, status, dto.Timestamp, notes)
}
