package queries

import (
	"context"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// GetBoardQueryHandler builds the orders board: cancelled orders disappear
// order.CancelledVisibility after their cancellation and the rest are sorted
// with order.CompareForBoard.
type GetBoardQueryHandler struct {
	factory ReadModelFactory
	now     func() time.Time
}

func NewGetBoardQueryHandler(factory ReadModelFactory, now func() time.Time) GetBoardQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetBoardQueryHandler{factory: factory, now: now}
}

func (h GetBoardQueryHandler) Handle(ctx context.Context, query GetBoardQuery) (GetBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBoardQueryResponse{}, err
	}

	rm := h.factory.Create()

	orders, err := rm.OrderRepository().List(ctx)
	if err != nil {
		return GetBoardQueryResponse{}, err
	}
	clients, err := rm.ClientRepository().List(ctx)
	if err != nil {
		return GetBoardQueryResponse{}, err
	}
	names := make(map[kernel.UUID]string, len(clients))
	for _, c := range clients {
		names[c.ID()] = c.FullName()
	}

	counts := make(map[order.Status]int, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		counts[s] = 0
	}

	products := newProductLookup(rm.ProductRepository())
	visible := order.VisibleOnBoard(orders, h.now())
	views := make([]BoardOrderView, 0, len(visible))
	for _, o := range visible {
		// TODO: load the items of all visible orders in one query once the
		// item repository can list by several orders.
		items, err := rm.OrderItemRepository().ListByOrder(ctx, o.ID())
		if err != nil {
			return GetBoardQueryResponse{}, err
		}
		if first, ok := order.FirstItem(items); ok {
			if _, err = products.get(ctx, first.ProductID()); err != nil {
				return GetBoardQueryResponse{}, err
			}
		}
		legacy := order.NewLegacyView(items, products.stepsOf)

		counts[o.Status()]++
		views = append(views, BoardOrderView{
			ID:          o.ID(),
			ClientID:    o.ClientID(),
			ClientName:  names[o.ClientID()],
			OrderDate:   o.OrderDate(),
			Status:      o.Status(),
			StatusColor: StatusColor(o.Status()),
			IsPriority:  o.IsPriority(),
			Notes:       o.Notes(),
			ItemCount:   len(items),
			CurrentStep: LegacyStepLabel(o.Status(), legacy),
			CreatedAt:   o.CreatedAt(),
		})
	}

	return GetBoardQueryResponse{Orders: views, Counts: counts}, nil
}
