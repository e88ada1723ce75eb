package order_test

import (
	"testing"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	createdAt = time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), orderDate, false, "rush", createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create waiting order with created entry", func(t *testing.T) {
		clientID := kernel.NewUUID()

		o, err := order.NewOrder(kernel.NewUUID(), clientID, orderDate, true, " rush ", createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ClientID().IsEqual(clientID))
		assert.Equal(t, order.Waiting, o.Status())
		assert.Equal(t, 0, o.CurrentStepIndex())
		assert.True(t, o.IsPriority())
		assert.Equal(t, "rush", *o.Notes())
		assert.Equal(t, createdAt, o.CreatedAt())

		require.Equal(t, 1, o.HistoryLength())
		entry, ok := o.LastEntry()
		require.True(t, ok)
		assert.Equal(t, "Created", entry.Step())
		assert.Equal(t, order.Waiting, entry.Status())
		assert.Equal(t, createdAt, entry.Timestamp())
		assert.Len(t, o.UncommittedHistory(), 1)
	})

	t.Run("should require client and date", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.UUID{}, time.Time{}, false, "", createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "client id")
		assert.Contains(t, err.Error(), "order date")
	})

	t.Run("should not be valid when zero", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
		require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	entry, err := order.NewHistoryEntry("Created", order.Waiting, createdAt, "")
	require.NoError(t, err)

	t.Run("should treat history as committed", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), orderDate, order.InProgress, 1, false,
			nil, []order.HistoryEntry{entry}, createdAt, createdAt)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, 1, o.CurrentStepIndex())
		assert.Empty(t, o.UncommittedHistory())
		assert.Equal(t, 1, o.CommittedHistoryLength())
	})

	t.Run("should reject invalid fields", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), orderDate, order.Unknown, -1, false,
			nil, nil, createdAt, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrder_Record(t *testing.T) {
	o := newTestOrder(t)
	at := createdAt.Add(time.Hour)

	require.NoError(t, o.Record("Design", order.InProgress, at, ""))

	assert.Equal(t, 2, o.HistoryLength())
	assert.Equal(t, order.Waiting, o.Status(), "recording an item change keeps the order status")
	assert.Equal(t, at, o.UpdatedAt())

	t.Run("should reject blank step", func(t *testing.T) {
		require.ErrorIs(t, o.Record(" ", order.Done, at, ""), errs.ErrValueIsRequired)
		assert.Equal(t, 2, o.HistoryLength())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should append entry and set status", func(t *testing.T) {
		o := newTestOrder(t)
		before := o.History()

		changed, err := o.ChangeStatus(order.Done, "Completion", createdAt.Add(time.Hour))

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Done, o.Status())
		after := o.History()
		require.Len(t, after, len(before)+1)
		assert.Equal(t, before, after[:len(before)], "existing entries are unchanged")
		assert.Equal(t, "Completion", after[len(after)-1].Step())
		assert.Equal(t, order.Done, after[len(after)-1].Status())
	})

	t.Run("should be a no-op for identical status", func(t *testing.T) {
		o := newTestOrder(t)

		changed, err := o.ChangeStatus(order.Waiting, "Changed to Waiting", createdAt.Add(time.Hour))

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 1, o.HistoryLength())
		assert.Equal(t, createdAt, o.UpdatedAt())
	})
}

func TestOrder_HistoryTracking(t *testing.T) {
	o := newTestOrder(t)
	o.MarkHistoryCommitted()
	require.Empty(t, o.UncommittedHistory())

	require.NoError(t, o.Record("Print", order.InProgress, createdAt.Add(time.Minute), "ink low"))

	pending := o.UncommittedHistory()
	require.Len(t, pending, 1)
	assert.Equal(t, 1, o.CommittedHistoryLength())
	assert.Equal(t, "ink low", *pending[0].Notes())

	history := o.History()
	history[0] = order.HistoryEntry{}
	assert.Equal(t, "Created", o.History()[0].Step(), "History returns a copy")
}

func TestOrder_Clone(t *testing.T) {
	o := newTestOrder(t)
	_, err := o.ChangeStatus(order.Done, "Completion", createdAt.Add(time.Hour))
	require.NoError(t, err)
	now := createdAt.Add(24 * time.Hour)

	clone, err := o.Clone(kernel.NewUUID(), now)

	require.NoError(t, err)
	assert.False(t, clone.IsEqual(o))
	assert.True(t, clone.ClientID().IsEqual(o.ClientID()))
	assert.Equal(t, order.Waiting, clone.Status())
	assert.Equal(t, 0, clone.CurrentStepIndex())
	assert.Equal(t, o.IsPriority(), clone.IsPriority())
	require.Equal(t, 1, clone.HistoryLength())
	assert.Equal(t, "Created (clone)", clone.History()[0].Step())
	assert.Equal(t, now, clone.CreatedAt())
}

func TestOrder_ChangedEvent(t *testing.T) {
	o := newTestOrder(t)
	at := createdAt.Add(time.Hour)
	_, err := o.ChangeStatus(order.Postponed, "Changed to Postponed", at)
	require.NoError(t, err)

	event := o.ChangedEvent()

	assert.Equal(t, o.ID().String(), event.OrderID)
	assert.Equal(t, "postponed", event.Status)
	assert.Equal(t, 2, event.HistoryLength)
	assert.Equal(t, "Changed to Postponed", event.LastStep)
	assert.Equal(t, at, event.OccurredAt)
}
