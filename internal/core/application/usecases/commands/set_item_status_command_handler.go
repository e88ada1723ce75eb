package commands

import (
	"context"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SetItemStatusCommandHandler sets an item status and applies the aggregation
// rule: completing the last open item completes the order, reopening an item
// of a done order puts the order back in progress. Setting the current status
// again writes nothing.
type SetItemStatusCommandHandler struct {
	progress itemProgress
}

func NewSetItemStatusCommandHandler(uowFactory UoWFactory, engine services.ProgressEngine) SetItemStatusCommandHandler {
	return SetItemStatusCommandHandler{
		progress: itemProgress{uowFactory: uowFactory, engine: engine},
	}
}

func (h SetItemStatusCommandHandler) Handle(ctx context.Context, cmd SetItemStatusCommand) (item *order.Item, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "SetItemStatus", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("item.id", cmd.ItemID().String()),
		attribute.String("item.status", cmd.Status().String()),
	))
	defer func() { telemetry.End(span, err) }()

	return h.progress.run(ctx, "set item status", cmd.OrderID(), cmd.ItemID(),
		func(o *order.Order, it *order.Item, p *product.Product, items []*order.Item) (services.ItemTransition, error) {
			return h.progress.engine.SetItemStatus(o, it, p, items, cmd.Status())
		})
}
