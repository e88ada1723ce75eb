package commands

import (
	"context"

	"printshop/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DeleteOrderCommandHandler deletes an order. Items and history are removed
// by the store cascade; a refused delete leaves everything untouched.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "DeleteOrder", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
	))
	defer func() { telemetry.End(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
