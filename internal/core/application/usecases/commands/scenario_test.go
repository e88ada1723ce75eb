package commands_test

import (
	"testing"

	"printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/postgres/sqlitetest"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/client"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gormUoWs struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (f gormUoWs) Create() commands.UoW {
	return f.factory.Create()
}

type gormProductUoWs struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (f gormProductUoWs) Create() commands.ProductUoW {
	return f.factory.Create()
}

// shop wires the command handlers onto an in-memory record store.
type shop struct {
	t   *testing.T
	uow gormUoWs

	createClient  commands.CreateClientCommandHandler
	deleteClient  commands.DeleteClientCommandHandler
	createProduct commands.CreateProductCommandHandler
	updateProduct commands.UpdateProductCommandHandler
	createOrder   commands.CreateOrderCommandHandler
	setOrder      commands.SetOrderStatusCommandHandler
	advance       commands.AdvanceItemStepCommandHandler
	setItemStatus commands.SetItemStatusCommandHandler
	goToStep      commands.GoToItemStepCommandHandler
	cloneOrder    commands.CloneOrderCommandHandler
	deleteOrder   commands.DeleteOrderCommandHandler
}

func newShop(t *testing.T) *shop {
	t.Helper()
	factory := postgres.NewGormUnitOfWorkFactory(sqlitetest.Open(t), postgres.WithClock(fixedNow))
	uows := gormUoWs{factory: factory}
	engine := newEngine()

	return &shop{
		t:             t,
		uow:           uows,
		createClient:  commands.NewCreateClientCommandHandler(uows),
		deleteClient:  commands.NewDeleteClientCommandHandler(uows),
		createProduct: commands.NewCreateProductCommandHandler(gormProductUoWs{factory: factory}),
		updateProduct: commands.NewUpdateProductCommandHandler(gormProductUoWs{factory: factory}),
		createOrder:   commands.NewCreateOrderCommandHandler(uows, fixedNow),
		setOrder:      commands.NewSetOrderStatusCommandHandler(uows, engine),
		advance:       commands.NewAdvanceItemStepCommandHandler(uows, engine),
		setItemStatus: commands.NewSetItemStatusCommandHandler(uows, engine),
		goToStep:      commands.NewGoToItemStepCommandHandler(uows, engine),
		cloneOrder:    commands.NewCloneOrderCommandHandler(uows, engine),
		deleteOrder:   commands.NewDeleteOrderCommandHandler(uows),
	}
}

func (s *shop) client() *client.Client {
	cmd, err := commands.NewCreateClientCommand(kernel.NewUUID(), "Grace Hopper", "0611223344", "grace@example.com")
	require.NoError(s.t, err)
	c, err := s.createClient.Handle(s.t.Context(), cmd)
	require.NoError(s.t, err)
	return c
}

func (s *shop) product(steps ...string) *product.Product {
	cmd, err := commands.NewSaveProductCommand(kernel.NewUUID(), "Business cards", "", steps)
	require.NoError(s.t, err)
	p, err := s.createProduct.Handle(s.t.Context(), cmd)
	require.NoError(s.t, err)
	return p
}

// bareProduct stores a product without the authoring conventions, e.g. one
// with no steps.
func (s *shop) bareProduct(steps ...string) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), "Custom job", "", steps)
	require.NoError(s.t, err)

	ctx := s.t.Context()
	uow := s.uow.Create()
	require.NoError(s.t, uow.Begin(ctx))
	require.NoError(s.t, uow.ProductRepository().Add(ctx, p))
	require.NoError(s.t, uow.Commit(ctx))
	return p
}

func (s *shop) order(c *client.Client, lines ...commands.OrderLine) (*order.Order, []*order.Item) {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), c.ID(), clock, false, "", lines)
	require.NoError(s.t, err)
	o, items, err := s.createOrder.Handle(s.t.Context(), cmd)
	require.NoError(s.t, err)
	return o, items
}

func (s *shop) load(orderID kernel.UUID) (*order.Order, []*order.Item) {
	uow := s.uow.Create()
	o, err := uow.OrderRepository().Get(s.t.Context(), orderID)
	require.NoError(s.t, err)
	items, err := uow.OrderItemRepository().ListByOrder(s.t.Context(), orderID)
	require.NoError(s.t, err)
	return o, items
}

func (s *shop) advanceItem(o *order.Order, item *order.Item) (*order.Item, error) {
	cmd, err := commands.NewAdvanceItemStepCommand(o.ID(), item.ID())
	require.NoError(s.t, err)
	return s.advance.Handle(s.t.Context(), cmd)
}

func steps(o *order.Order) []string {
	labels := make([]string, 0, o.HistoryLength())
	for _, e := range o.History() {
		labels = append(labels, e.Step())
	}
	return labels
}

func TestScenario_ItemWalksThroughEveryStep(t *testing.T) {
	s := newShop(t)
	p := s.product("Design", "Print", "Cut")
	require.Equal(t, []string{"Design", "Print", "Cut", product.PackagingStep}, p.Steps())

	o, items := s.order(s.client(), commands.OrderLine{ProductID: p.ID(), Quantity: 250})
	require.Len(t, items, 1)

	for i := range p.StepCount() {
		item, err := s.advanceItem(o, items[0])
		require.NoError(t, err)
		require.NotNil(t, item.StepIndex())
		assert.Equal(t, i, *item.StepIndex())
		assert.Equal(t, order.InProgress, item.Status())
	}

	item, err := s.advanceItem(o, items[0])
	require.NoError(t, err)
	assert.Equal(t, order.Done, item.Status())

	stored, storedItems := s.load(o.ID())
	assert.Equal(t, order.Done, stored.Status())
	assert.Equal(t, order.Done, storedItems[0].Status())

	history := steps(stored)
	require.GreaterOrEqual(t, len(history), 6)
	assert.Equal(t, []string{order.LabelCreated, "Design", "Print", "Cut", product.PackagingStep}, history[:5])
	last, ok := stored.LastEntry()
	require.True(t, ok)
	assert.Equal(t, order.Done, last.Status())
}

func TestScenario_RollbackReopensDoneOrder(t *testing.T) {
	s := newShop(t)
	p := s.product("Design", "Print")
	o, items := s.order(s.client(), commands.OrderLine{ProductID: p.ID(), Quantity: 10})

	_, err := s.advanceItem(o, items[0])
	require.NoError(t, err)

	done, err := commands.NewSetItemStatusCommand(o.ID(), items[0].ID(), order.Done)
	require.NoError(t, err)
	_, err = s.setItemStatus.Handle(t.Context(), done)
	require.NoError(t, err)

	stored, _ := s.load(o.ID())
	require.Equal(t, order.Done, stored.Status())

	back, err := commands.NewGoToItemStepCommand(o.ID(), items[0].ID(), 0)
	require.NoError(t, err)
	item, err := s.goToStep.Handle(t.Context(), back)
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, item.Status())
	require.NotNil(t, item.StepIndex())
	assert.Equal(t, 0, *item.StepIndex())

	stored, _ = s.load(o.ID())
	assert.Equal(t, order.InProgress, stored.Status())
	assert.Contains(t, steps(stored), order.RollbackLabel("Design"))

	ahead, err := commands.NewGoToItemStepCommand(o.ID(), items[0].ID(), 2)
	require.NoError(t, err)
	_, err = s.goToStep.Handle(t.Context(), ahead)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestScenario_ProductWithoutSteps(t *testing.T) {
	s := newShop(t)
	p := s.bareProduct()
	o, items := s.order(s.client(), commands.OrderLine{ProductID: p.ID(), Quantity: 1})

	_, err := s.advanceItem(o, items[0])
	require.ErrorIs(t, err, errs.ErrInvalidState)

	start, err := commands.NewSetItemStatusCommand(o.ID(), items[0].ID(), order.InProgress)
	require.NoError(t, err)
	item, err := s.setItemStatus.Handle(t.Context(), start)
	require.NoError(t, err)
	assert.Nil(t, item.StepIndex())

	finish, err := commands.NewSetItemStatusCommand(o.ID(), items[0].ID(), order.Done)
	require.NoError(t, err)
	_, err = s.setItemStatus.Handle(t.Context(), finish)
	require.NoError(t, err)

	stored, _ := s.load(o.ID())
	assert.Equal(t, order.Done, stored.Status())
	history := steps(stored)
	assert.Contains(t, history, order.LabelProcessingStarted)
	assert.Contains(t, history, order.LabelFinalizedNoSteps)
}

func TestScenario_CloneResetsProgress(t *testing.T) {
	s := newShop(t)
	flyer := s.product("Print")
	banner := s.product("Print", "Cut")
	o, items := s.order(s.client(),
		commands.OrderLine{ProductID: flyer.ID(), Quantity: 500, Notes: "glossy"},
		commands.OrderLine{ProductID: banner.ID(), Quantity: 2},
	)
	_, err := s.advanceItem(o, items[0])
	require.NoError(t, err)

	cmd, err := commands.NewCloneOrderCommand(o.ID())
	require.NoError(t, err)
	clone, err := s.cloneOrder.Handle(t.Context(), cmd)
	require.NoError(t, err)

	stored, clonedItems := s.load(clone.ID())
	assert.Equal(t, order.Waiting, stored.Status())
	assert.Equal(t, []string{order.LabelCreatedClone}, steps(stored))
	assert.True(t, stored.ClientID().IsEqual(o.ClientID()))
	require.Len(t, clonedItems, 2)

	quantities := map[string]int{}
	for _, item := range clonedItems {
		assert.Equal(t, order.Waiting, item.Status())
		assert.Nil(t, item.StepIndex())
		quantities[item.ProductID().String()] = item.Quantity()
	}
	assert.Equal(t, map[string]int{flyer.ID().String(): 500, banner.ID().String(): 2}, quantities)
}

func TestScenario_DeletingClientRemovesOrders(t *testing.T) {
	s := newShop(t)
	p := s.product("Print")
	c := s.client()
	o, items := s.order(c, commands.OrderLine{ProductID: p.ID(), Quantity: 3})

	cmd, err := commands.NewDeleteClientCommand(c.ID())
	require.NoError(t, err)
	require.NoError(t, s.deleteClient.Handle(t.Context(), cmd))

	uow := s.uow.Create()
	_, err = uow.OrderRepository().Get(t.Context(), o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = uow.OrderItemRepository().Get(t.Context(), items[0].ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = uow.ClientRepository().Get(t.Context(), c.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestScenario_DeleteOrderThenMissing(t *testing.T) {
	s := newShop(t)
	p := s.product("Print")
	o, _ := s.order(s.client(), commands.OrderLine{ProductID: p.ID(), Quantity: 3})

	cmd, err := commands.NewDeleteOrderCommand(o.ID())
	require.NoError(t, err)
	require.NoError(t, s.deleteOrder.Handle(t.Context(), cmd))
	require.ErrorIs(t, s.deleteOrder.Handle(t.Context(), cmd), errs.ErrObjectNotFound)

	items, err := s.uow.Create().OrderItemRepository().ListByOrder(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScenario_ShrinkingStepsBelowAnItemIsRefused(t *testing.T) {
	s := newShop(t)
	p := s.product("Design", "Print", "Cut")
	o, items := s.order(s.client(), commands.OrderLine{ProductID: p.ID(), Quantity: 40})
	for range p.StepCount() {
		_, err := s.advanceItem(o, items[0])
		require.NoError(t, err)
	}

	shrink, err := commands.NewSaveProductCommand(p.ID(), p.Name(), "", []string{"Print"})
	require.NoError(t, err)
	_, err = s.updateProduct.Handle(t.Context(), shrink)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	stored, err := s.uow.Create().ProductRepository().Get(t.Context(), p.ID())
	require.NoError(t, err)
	assert.Equal(t, p.Steps(), stored.Steps())

	grow, err := commands.NewSaveProductCommand(p.ID(), p.Name(), "", []string{"Design", "Print", "Cut", "Trim"})
	require.NoError(t, err)
	_, err = s.updateProduct.Handle(t.Context(), grow)
	require.NoError(t, err)

	item, err := s.advanceItem(o, items[0])
	require.NoError(t, err)
	assert.Equal(t, 4, *item.StepIndex())
	assert.Equal(t, order.InProgress, item.Status())
}

func TestScenario_ItemChangeKeepsManuallyDoneOrder(t *testing.T) {
	s := newShop(t)
	p := s.product("Design", "Print")
	o, items := s.order(s.client(), commands.OrderLine{ProductID: p.ID(), Quantity: 5})

	done, err := commands.NewSetOrderStatusCommand(o.ID(), order.Done)
	require.NoError(t, err)
	_, err = s.setOrder.Handle(t.Context(), done)
	require.NoError(t, err)

	postpone, err := commands.NewSetItemStatusCommand(o.ID(), items[0].ID(), order.Postponed)
	require.NoError(t, err)
	_, err = s.setItemStatus.Handle(t.Context(), postpone)
	require.NoError(t, err)

	stored, storedItems := s.load(o.ID())
	assert.Equal(t, order.Done, stored.Status())
	assert.Equal(t, order.Postponed, storedItems[0].Status())
	assert.Equal(t, 3, stored.HistoryLength())
}

func TestScenario_GoToCurrentStepIsNoOp(t *testing.T) {
	s := newShop(t)
	p := s.product("Design", "Print")
	o, items := s.order(s.client(), commands.OrderLine{ProductID: p.ID(), Quantity: 5})
	for range 2 {
		_, err := s.advanceItem(o, items[0])
		require.NoError(t, err)
	}
	before, _ := s.load(o.ID())

	same, err := commands.NewGoToItemStepCommand(o.ID(), items[0].ID(), 1)
	require.NoError(t, err)
	item, err := s.goToStep.Handle(t.Context(), same)
	require.NoError(t, err)
	assert.Equal(t, 1, *item.StepIndex())

	after, _ := s.load(o.ID())
	assert.Equal(t, before.HistoryLength(), after.HistoryLength())
}
