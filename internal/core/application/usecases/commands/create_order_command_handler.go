package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// CreateOrderCommandHandler creates a waiting order with its items. The client
// and every product must exist.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, now func() time.Time) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory, now: now}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, []*order.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ClientRepository().Get(ctx, cmd.ClientID()); err != nil {
		return nil, nil, err
	}

	now := h.now()
	o, err := order.NewOrder(cmd.OrderID(), cmd.ClientID(), cmd.OrderDate(), cmd.IsPriority(), cmd.Notes(), now)
	if err != nil {
		return nil, nil, err
	}

	lines := cmd.Lines()
	items := make([]*order.Item, 0, len(lines))
	for i, line := range lines {
		if _, err = uow.ProductRepository().Get(ctx, line.ProductID); err != nil {
			return nil, nil, err
		}
		item, err := order.NewItem(kernel.NewUUID(), o.ID(), line.ProductID, line.Quantity, line.Notes,
			now.Add(time.Duration(i)*time.Microsecond))
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, nil, err
	}
	for _, item := range items {
		if err = uow.OrderItemRepository().Add(ctx, item); err != nil {
			return nil, nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return o, items, nil
}
