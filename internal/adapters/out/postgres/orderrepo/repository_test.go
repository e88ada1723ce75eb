package orderrepo_test

import (
	"testing"
	"time"

	"printshop/internal/adapters/out/postgres/clientrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/adapters/out/postgres/sqlitetest"
	"printshop/internal/core/domain/model/client"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var clock = time.Date(2025, time.May, 12, 10, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func seedClient(t *testing.T, db *gorm.DB) *client.Client {
	t.Helper()
	c, err := client.NewClient(kernel.NewUUID(), "Katherine Johnson", "0102030405", "")
	require.NoError(t, err)
	require.NoError(t, clientrepo.NewGormClientRepository(db).Add(t.Context(), c))
	return c
}

func TestGormOrderRepository_AddAndGet(t *testing.T) {
	db := sqlitetest.Open(t)
	c := seedClient(t, db)
	tracker := new(MockAggregateTracker)
	repo := orderrepo.NewGormOrderRepository(db, tracker)

	o, err := order.NewOrder(kernel.NewUUID(), c.ID(), clock, true, "deliver before noon", clock)
	require.NoError(t, err)
	tracker.On("TrackAggregate", o.ID(), o).Once()

	require.NoError(t, repo.Add(t.Context(), o))

	got, err := repo.Get(t.Context(), o.ID())
	require.NoError(t, err)
	assert.True(t, got.ID().IsEqual(o.ID()))
	assert.True(t, got.ClientID().IsEqual(c.ID()))
	assert.Equal(t, order.Waiting, got.Status())
	assert.True(t, got.OrderDate().Equal(clock))
	assert.True(t, got.CreatedAt().Equal(clock))
	require.Equal(t, 1, got.HistoryLength())
	assert.Equal(t, order.LabelCreated, got.History()[0].Step())
	assert.Empty(t, got.UncommittedHistory())
	tracker.AssertExpectations(t)
}

func TestGormOrderRepository_UpdateAppendsHistory(t *testing.T) {
	db := sqlitetest.Open(t)
	c := seedClient(t, db)
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	repo := orderrepo.NewGormOrderRepository(db, tracker)

	o, err := order.NewOrder(kernel.NewUUID(), c.ID(), clock, false, "", clock)
	require.NoError(t, err)
	require.NoError(t, repo.Add(t.Context(), o))

	loaded, err := repo.Get(t.Context(), o.ID())
	require.NoError(t, err)
	changed, err := loaded.ChangeStatus(order.Postponed, "Changed to Postponed", clock.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Update(t.Context(), loaded))

	again, err := repo.Get(t.Context(), o.ID())
	require.NoError(t, err)
	changed, err = again.ChangeStatus(order.InProgress, "Print", clock.Add(2*time.Hour))
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Update(t.Context(), again))

	got, err := repo.Get(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, got.Status())
	require.Equal(t, 3, got.HistoryLength())
	history := got.History()
	assert.Equal(t, order.LabelCreated, history[0].Step())
	assert.Equal(t, order.Postponed, history[1].Status())
	assert.Equal(t, "Print", history[2].Step())
	assert.True(t, got.UpdatedAt().Equal(clock.Add(2*time.Hour)))
}

func TestGormOrderRepository_UpdateWithoutChangesWritesNoHistory(t *testing.T) {
	db := sqlitetest.Open(t)
	c := seedClient(t, db)
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	repo := orderrepo.NewGormOrderRepository(db, tracker)

	o, err := order.NewOrder(kernel.NewUUID(), c.ID(), clock, false, "", clock)
	require.NoError(t, err)
	require.NoError(t, repo.Add(t.Context(), o))
	require.NoError(t, repo.Update(t.Context(), o))

	got, err := repo.Get(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, got.HistoryLength())
}

func TestGormOrderRepository_NotFound(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := orderrepo.NewGormOrderRepository(db, new(MockAggregateTracker))
	id := kernel.NewUUID()

	_, err := repo.Get(t.Context(), id)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	o, err := order.NewOrder(id, kernel.NewUUID(), clock, false, "", clock)
	require.NoError(t, err)
	require.ErrorIs(t, repo.Update(t.Context(), o), errs.ErrObjectNotFound)
	require.ErrorIs(t, repo.Delete(t.Context(), id), errs.ErrObjectNotFound)
}

func TestGormOrderRepository_AddForUnknownClient(t *testing.T) {
	db := sqlitetest.Open(t)
	repo := orderrepo.NewGormOrderRepository(db, new(MockAggregateTracker))

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), clock, false, "", clock)
	require.NoError(t, err)

	require.ErrorIs(t, repo.Add(t.Context(), o), errs.ErrReferentialConflict)
}

func TestGormOrderRepository_ListByClient(t *testing.T) {
	db := sqlitetest.Open(t)
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	repo := orderrepo.NewGormOrderRepository(db, tracker)
	alice := seedClient(t, db)
	bob := seedClient(t, db)

	for i, clientID := range []kernel.UUID{alice.ID(), bob.ID(), alice.ID()} {
		o, err := order.NewOrder(kernel.NewUUID(), clientID, clock, false, "", clock.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), o))
	}

	orders, err := repo.ListByClient(t.Context(), alice.ID())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].CreatedAt().Before(orders[1].CreatedAt()))

	all, err := repo.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGormClientRepository_DeleteWithOrdersIsRefused(t *testing.T) {
	db := sqlitetest.Open(t)
	c := seedClient(t, db)
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	o, err := order.NewOrder(kernel.NewUUID(), c.ID(), clock, false, "", clock)
	require.NoError(t, err)
	require.NoError(t, orderrepo.NewGormOrderRepository(db, tracker).Add(t.Context(), o))

	err = clientrepo.NewGormClientRepository(db).Delete(t.Context(), c.ID())

	require.ErrorIs(t, err, errs.ErrReferentialConflict)
}
