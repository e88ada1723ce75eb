package commands

import (
	"context"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CloneOrderCommandHandler creates a waiting copy of an order and its items.
// The new order and its items are inserted in one transaction, so a failed
// item insert leaves no trace of the new order.
type CloneOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     services.ProgressEngine
}

func NewCloneOrderCommandHandler(uowFactory UoWFactory, engine services.ProgressEngine) CloneOrderCommandHandler {
	return CloneOrderCommandHandler{uowFactory: uowFactory, engine: engine}
}

func (h CloneOrderCommandHandler) Handle(ctx context.Context, cmd CloneOrderCommand) (clone *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "CloneOrder", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
	))
	defer func() { telemetry.End(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	itemRepo := uow.OrderItemRepository()

	src, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	items, err := itemRepo.ListByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	clone, clonedItems, err := h.engine.CloneOrder(src, items)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, clone); err != nil {
		return nil, err
	}
	for _, item := range clonedItems {
		if err = itemRepo.Add(ctx, item); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("clone.id", clone.ID().String()))
	return clone, nil
}
