package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items and history.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemView is an item with the process of its product.
type OrderItemView struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	Steps       []string
	Quantity    int
	Notes       *string
	Status      order.Status
	StatusColor string
	StepIndex   *int
	CurrentStep string
	StepColor   string
	CreatedAt   time.Time
}

type HistoryEntryView struct {
	Step      string
	Status    order.Status
	Timestamp time.Time
	Notes     *string
}

// GetOrderQueryResponse is the detail view of an order. CurrentStep and
// Legacy describe the order through its first item.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	ClientID         kernel.UUID
	ClientName       string
	OrderDate        time.Time
	Status           order.Status
	StatusColor      string
	CurrentStepIndex int
	CurrentStep      string
	IsPriority       bool
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Legacy           order.LegacyView
	Items            []OrderItemView
	History          []HistoryEntryView
}
