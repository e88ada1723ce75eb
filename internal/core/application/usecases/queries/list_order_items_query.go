package queries

import (
	"errors"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrListOrderItemsQueryIsNotConstructed = errors.New(
	"ListOrderItemsQuery must be created via NewListOrderItemsQuery constructor",
)

// ItemFilter narrows ListOrderItemsQuery. Nil fields do not filter. Date
// bounds are inclusive and apply to the order date.
type ItemFilter struct {
	ProductID   *kernel.UUID
	ClientID    *kernel.UUID
	MinQuantity *int
	MaxQuantity *int
	From        *time.Time
	To          *time.Time
}

// ListOrderItemsQuery lists items across orders. In-progress items come
// first, then the most recent order dates.
//
// Example:
//
//	min := 10
//	query, err := NewListOrderItemsQuery(ItemFilter{MinQuantity: &min})
//	items, err := handler.Handle(ctx, query)
type ListOrderItemsQuery struct {
	filter ItemFilter

	guard guard.ConstructorGuard
}

func NewListOrderItemsQuery(filter ItemFilter) (ListOrderItemsQuery, error) {
	var err error
	if filter.ProductID != nil {
		err = errors.Join(err, filter.ProductID.Validate())
	}
	if filter.ClientID != nil {
		err = errors.Join(err, filter.ClientID.Validate())
	}
	if filter.MinQuantity != nil && *filter.MinQuantity < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidError("min quantity"))
	}
	if filter.MinQuantity != nil && filter.MaxQuantity != nil && *filter.MaxQuantity < *filter.MinQuantity {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("max quantity", *filter.MaxQuantity, *filter.MinQuantity, "unbounded"))
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		err = errors.Join(err, errs.NewValueIsInvalidError("date range"))
	}
	if err != nil {
		return ListOrderItemsQuery{}, err
	}
	return ListOrderItemsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrderItemsQuery) Validate() error {
	return q.guard.Validate(ErrListOrderItemsQueryIsNotConstructed)
}

func (q ListOrderItemsQuery) Filter() ItemFilter {
	return q.filter
}

type ListOrderItemsQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	ClientID    kernel.UUID
	ClientName  string
	OrderDate   time.Time
	IsPriority  bool
	Quantity    int
	Notes       *string
	Status      order.Status
	StatusColor string
	StepIndex   *int
	CurrentStep string
	StepColor   string
}
