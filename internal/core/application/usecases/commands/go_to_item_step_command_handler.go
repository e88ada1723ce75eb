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

// GoToItemStepCommandHandler rolls an item back, forces it in progress and
// reopens the order when it was done.
type GoToItemStepCommandHandler struct {
	progress itemProgress
}

func NewGoToItemStepCommandHandler(uowFactory UoWFactory, engine services.ProgressEngine) GoToItemStepCommandHandler {
	return GoToItemStepCommandHandler{
		progress: itemProgress{uowFactory: uowFactory, engine: engine},
	}
}

func (h GoToItemStepCommandHandler) Handle(ctx context.Context, cmd GoToItemStepCommand) (item *order.Item, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "GoToItemStep", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("item.id", cmd.ItemID().String()),
		attribute.Int("item.target_step", cmd.Target()),
	))
	defer func() { telemetry.End(span, err) }()

	return h.progress.run(ctx, "go to item step", cmd.OrderID(), cmd.ItemID(),
		func(o *order.Order, it *order.Item, p *product.Product, items []*order.Item) (services.ItemTransition, error) {
			return h.progress.engine.GoToItemStep(o, it, p, items, cmd.Target())
		})
}
