package commands

import (
	"context"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SetOrderStatusCommandHandler sets the order status with a history label
// computed on the order's first item.
type SetOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	engine     services.ProgressEngine
}

func NewSetOrderStatusCommandHandler(uowFactory UoWFactory, engine services.ProgressEngine) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{uowFactory: uowFactory, engine: engine}
}

func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (o *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "SetOrderStatus", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.status", cmd.Status().String()),
	))
	defer func() { telemetry.End(span, err) }()

	return setOrderStatus(ctx, h.uowFactory, h.engine, cmd.OrderID(), cmd.Status())
}
