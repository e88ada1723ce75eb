package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/guard"
)

var ErrGetBoardQueryIsNotConstructed = errors.New(
	"GetBoardQuery must be created via NewGetBoardQuery constructor",
)

// GetBoardQuery retrieves the active orders board.
type GetBoardQuery struct {
	guard guard.ConstructorGuard
}

func NewGetBoardQuery() GetBoardQuery {
	return GetBoardQuery{guard: guard.NewConstructorGuard()}
}

func (q GetBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardQueryIsNotConstructed)
}

type BoardOrderView struct {
	ID          kernel.UUID
	ClientID    kernel.UUID
	ClientName  string
	OrderDate   time.Time
	Status      order.Status
	StatusColor string
	IsPriority  bool
	Notes       *string
	ItemCount   int
	CurrentStep string
	CreatedAt   time.Time
}

// GetBoardQueryResponse lists the visible orders in board order. Counts has
// an entry for every status, computed over the visible orders.
type GetBoardQueryResponse struct {
	Orders []BoardOrderView
	Counts map[order.Status]int
}
