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

// AdvanceItemStepCommandHandler advances an item and records the entered
// step on its order. On the last step it completes the item, which may
// complete the order.
//
// A *errs.CascadeError is returned together with the updated item when the
// item change committed but the order status change did not.
type AdvanceItemStepCommandHandler struct {
	progress itemProgress
}

func NewAdvanceItemStepCommandHandler(
	uowFactory UoWFactory,
	engine services.ProgressEngine,
) AdvanceItemStepCommandHandler {
	return AdvanceItemStepCommandHandler{
		progress: itemProgress{uowFactory: uowFactory, engine: engine},
	}
}

func (h AdvanceItemStepCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceItemStepCommand,
) (item *order.Item, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "AdvanceItemStep", trace.WithAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("item.id", cmd.ItemID().String()),
	))
	defer func() { telemetry.End(span, err) }()

	return h.progress.run(ctx, "advance item step", cmd.OrderID(), cmd.ItemID(),
		func(o *order.Order, it *order.Item, p *product.Product, items []*order.Item) (services.ItemTransition, error) {
			return h.progress.engine.AdvanceItemStep(o, it, p, items)
		})
}
