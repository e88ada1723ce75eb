package queries

import (
	"context"
	"errors"

	"printshop/internal/core/domain/model/client"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/pkg/guard"
)

var (
	ErrListClientsQueryIsNotConstructed = errors.New(
		"ListClientsQuery must be created via NewListClientsQuery constructor",
	)
	ErrListProductsQueryIsNotConstructed = errors.New(
		"ListProductsQuery must be created via NewListProductsQuery constructor",
	)
)

type ListClientsQuery struct {
	guard guard.ConstructorGuard
}

func NewListClientsQuery() ListClientsQuery {
	return ListClientsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListClientsQuery) Validate() error {
	return q.guard.Validate(ErrListClientsQueryIsNotConstructed)
}

type ClientView struct {
	ID       kernel.UUID
	FullName string
	Phone    string
	Email    *string
}

type ListClientsQueryHandler struct {
	factory ReadModelFactory
}

func NewListClientsQueryHandler(factory ReadModelFactory) ListClientsQueryHandler {
	return ListClientsQueryHandler{factory: factory}
}

// Handle returns every client sorted by name.
func (h ListClientsQueryHandler) Handle(ctx context.Context, query ListClientsQuery) ([]ClientView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	clients, err := h.factory.Create().ClientRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ClientView, 0, len(clients))
	for _, c := range clients {
		views = append(views, NewClientView(c))
	}
	return views, nil
}

func NewClientView(c *client.Client) ClientView {
	return ClientView{
		ID:       c.ID(),
		FullName: c.FullName(),
		Phone:    c.Phone(),
		Email:    c.Email(),
	}
}

type ListProductsQuery struct {
	guard guard.ConstructorGuard
}

func NewListProductsQuery() ListProductsQuery {
	return ListProductsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

type StepView struct {
	Name  string
	Color string
}

type ProductView struct {
	ID          kernel.UUID
	Name        string
	Description *string
	Steps       []StepView
}

type ListProductsQueryHandler struct {
	factory ReadModelFactory
}

func NewListProductsQueryHandler(factory ReadModelFactory) ListProductsQueryHandler {
	return ListProductsQueryHandler{factory: factory}
}

// Handle returns every product sorted by name, each step with its badge colour.
func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products, err := h.factory.Create().ProductRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views, nil
}

// NewProductView renders a product with a badge colour per step.
func NewProductView(p *product.Product) ProductView {
	steps := make([]StepView, 0, p.StepCount())
	for _, s := range p.Steps() {
		steps = append(steps, StepView{Name: s, Color: StepColor(s)})
	}
	return ProductView{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Steps:       steps,
	}
}
