package queries

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/core/ports"
)

// GetOrderQueryHandler assembles the detail view of an order.
type GetOrderQueryHandler struct {
	factory ReadModelFactory
}

func NewGetOrderQueryHandler(factory ReadModelFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{factory: factory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rm := h.factory.Create()

	o, err := rm.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	c, err := rm.ClientRepository().Get(ctx, o.ClientID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	items, err := rm.OrderItemRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	products := newProductLookup(rm.ProductRepository())
	itemViews := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		p, err := products.get(ctx, item.ProductID())
		if err != nil {
			return GetOrderQueryResponse{}, err
		}
		itemViews = append(itemViews, newOrderItemView(item, p))
	}

	legacy := order.NewLegacyView(items, products.stepsOf)

	history := make([]HistoryEntryView, 0, o.HistoryLength())
	for _, e := range o.History() {
		history = append(history, HistoryEntryView{
			Step:      e.Step(),
			Status:    e.Status(),
			Timestamp: e.Timestamp(),
			Notes:     e.Notes(),
		})
	}

	return GetOrderQueryResponse{
		ID:               o.ID(),
		ClientID:         o.ClientID(),
		ClientName:       c.FullName(),
		OrderDate:        o.OrderDate(),
		Status:           o.Status(),
		StatusColor:      StatusColor(o.Status()),
		CurrentStepIndex: o.CurrentStepIndex(),
		CurrentStep:      LegacyStepLabel(o.Status(), legacy),
		IsPriority:       o.IsPriority(),
		Notes:            o.Notes(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		Legacy:           legacy,
		Items:            itemViews,
		History:          history,
	}, nil
}

func newOrderItemView(item *order.Item, p *product.Product) OrderItemView {
	current := CurrentStepLabel(item.Status(), p.Steps(), item.StepIndex())
	return OrderItemView{
		ID:          item.ID(),
		ProductID:   item.ProductID(),
		ProductName: p.Name(),
		Steps:       p.Steps(),
		Quantity:    item.Quantity(),
		Notes:       item.Notes(),
		Status:      item.Status(),
		StatusColor: StatusColor(item.Status()),
		StepIndex:   item.StepIndex(),
		CurrentStep: current,
		StepColor:   StepColor(current),
		CreatedAt:   item.CreatedAt(),
	}
}

// productLookup memoises product reads within one query.
type productLookup struct {
	repo     ports.ProductRepository
	products map[kernel.UUID]*product.Product
}

func newProductLookup(repo ports.ProductRepository) *productLookup {
	return &productLookup{repo: repo, products: make(map[kernel.UUID]*product.Product)}
}

func (l *productLookup) get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if p, ok := l.products[id]; ok {
		return p, nil
	}
	p, err := l.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	l.products[id] = p
	return p, nil
}

// stepsOf is only called for products already loaded by get.
func (l *productLookup) stepsOf(item *order.Item) []string {
	if p, ok := l.products[item.ProductID()]; ok {
		return p.Steps()
	}
	return nil
}
