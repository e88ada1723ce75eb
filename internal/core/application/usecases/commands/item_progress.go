package commands

import (
	"context"
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"
)

type itemChangeFunc func(
	o *order.Order,
	item *order.Item,
	p *product.Product,
	items []*order.Item,
) (services.ItemTransition, error)

// itemProgress runs an engine item operation as two units of work: the item
// and its history entry are committed together, then the aggregation cascade
// is applied as a separate order status change.
type itemProgress struct {
	uowFactory UoWFactory
	engine     services.ProgressEngine
}

func (p itemProgress) run(
	ctx context.Context,
	operation string,
	orderID, itemID kernel.UUID,
	change itemChangeFunc,
) (*order.Item, error) {
	item, tr, err := p.apply(ctx, orderID, itemID, change)
	if err != nil {
		return nil, err
	}
	if !tr.CascadeRequired {
		return item, nil
	}

	if _, err = setOrderStatus(ctx, p.uowFactory, p.engine, orderID, tr.Cascade); err != nil {
		applied := fmt.Sprintf("item %s set to %s", item.ID(), item.Status())
		return item, errs.NewCascadeError(operation, orderID, applied, err)
	}
	return item, nil
}

func (p itemProgress) apply(
	ctx context.Context,
	orderID, itemID kernel.UUID,
	change itemChangeFunc,
) (*order.Item, services.ItemTransition, error) {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, services.ItemTransition{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	itemRepo := uow.OrderItemRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, services.ItemTransition{}, err
	}
	items, err := itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, services.ItemTransition{}, err
	}
	item, err := findItem(items, orderID, itemID)
	if err != nil {
		return nil, services.ItemTransition{}, err
	}
	prod, err := uow.ProductRepository().Get(ctx, item.ProductID())
	if err != nil {
		return nil, services.ItemTransition{}, err
	}

	tr, err := change(o, item, prod, items)
	if err != nil {
		return nil, services.ItemTransition{}, err
	}
	if !tr.Changed {
		return item, tr, nil
	}

	if err = itemRepo.Update(ctx, item); err != nil {
		return nil, services.ItemTransition{}, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, services.ItemTransition{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, services.ItemTransition{}, err
	}
	return item, tr, nil
}

// setOrderStatus is the order status change shared by SetOrderStatus and the
// aggregation cascade.
func setOrderStatus(
	ctx context.Context,
	uowFactory UoWFactory,
	engine services.ProgressEngine,
	orderID kernel.UUID,
	status order.Status,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := uow.OrderItemRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view, err := legacyView(ctx, uow.ProductRepository(), items)
	if err != nil {
		return nil, err
	}

	changed, err := engine.SetOrderStatus(o, view, status)
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// reconcileOrder applies the aggregation rule after items were added or
// removed, inside the caller's unit of work.
func reconcileOrder(
	ctx context.Context,
	uow UoW,
	engine services.ProgressEngine,
	o *order.Order,
	items []*order.Item,
) error {
	status, required := services.NewStatusAggregator().Reconcile(o.Status(), items)
	if !required {
		return nil
	}
	view, err := legacyView(ctx, uow.ProductRepository(), items)
	if err != nil {
		return err
	}
	if _, err = engine.SetOrderStatus(o, view, status); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}

func legacyView(ctx context.Context, products ports.ProductRepository, items []*order.Item) (order.LegacyView, error) {
	first, ok := order.FirstItem(items)
	if !ok {
		return order.LegacyView{}, nil
	}
	p, err := products.Get(ctx, first.ProductID())
	if err != nil {
		return order.LegacyView{}, err
	}
	return order.NewLegacyView(items, func(*order.Item) []string { return p.Steps() }), nil
}

func findItem(items []*order.Item, orderID, itemID kernel.UUID) (*order.Item, error) {
	for _, item := range items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundErrorWithCause("order item", itemID,
		fmt.Errorf("no such item on order %s", orderID))
}
