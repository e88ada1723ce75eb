package commands

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AddOrderItemCommandHandler adds an item to an order. Adding an open item to
// a done order puts the order back in progress.
type AddOrderItemCommandHandler struct {
	uowFactory UoWFactory
	engine     services.ProgressEngine
	now        func() time.Time
}

func NewAddOrderItemCommandHandler(
	uowFactory UoWFactory,
	engine services.ProgressEngine,
	now func() time.Time,
) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{uowFactory: uowFactory, engine: engine, now: now}
}

func (h AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) (_ *order.Item, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "AddOrderItem", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("item.id", cmd.ItemID().String()),
		attribute.String("product.id", cmd.Line().ProductID.String()),
	))
	defer func() { telemetry.End(span, err) }()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	line := cmd.Line()
	if _, err = uow.ProductRepository().Get(ctx, line.ProductID); err != nil {
		return nil, err
	}
	items, err := uow.OrderItemRepository().ListByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	item, err := order.NewItem(cmd.ItemID(), o.ID(), line.ProductID, line.Quantity, line.Notes, h.now())
	if err != nil {
		return nil, err
	}
	if err = uow.OrderItemRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	if err = reconcileOrder(ctx, uow, h.engine, o, append(items, item)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveOrderItemCommandHandler removes an item from an order. Removing the
// last open item of an order completes it.
type RemoveOrderItemCommandHandler struct {
	uowFactory UoWFactory
	engine     services.ProgressEngine
}

func NewRemoveOrderItemCommandHandler(uowFactory UoWFactory, engine services.ProgressEngine) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{uowFactory: uowFactory, engine: engine}
}

func (h RemoveOrderItemCommandHandler) Handle(ctx context.Context, cmd RemoveOrderItemCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "RemoveOrderItem", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("item.id", cmd.ItemID().String()),
	))
	defer func() { telemetry.End(span, err) }()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	items, err := uow.OrderItemRepository().ListByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if _, err = findItem(items, cmd.OrderID(), cmd.ItemID()); err != nil {
		return err
	}

	if err = uow.OrderItemRepository().Delete(ctx, cmd.ItemID()); err != nil {
		return err
	}

	remaining := make([]*order.Item, 0, len(items))
	for _, item := range items {
		if !item.ID().IsEqual(cmd.ItemID()) {
			remaining = append(remaining, item)
		}
	}
	if err = reconcileOrder(ctx, uow, h.engine, o, remaining); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
