package services_test

import (
	"testing"

	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAggregator_Derive(t *testing.T) {
	aggregator := services.NewStatusAggregator()

	withStatus := newItem

	t.Run("should complete order when every item is done", func(t *testing.T) {
		a, b := withStatus(t, order.Done), withStatus(t, order.Done)

		status, ok := aggregator.Derive(order.InProgress, order.InProgress, b, []*order.Item{a, b})

		assert.True(t, ok)
		assert.Equal(t, order.Done, status)
	})

	t.Run("should keep order while an item is open", func(t *testing.T) {
		a, b := withStatus(t, order.Postponed), withStatus(t, order.Done)

		_, ok := aggregator.Derive(order.InProgress, order.InProgress, b, []*order.Item{a, b})

		assert.False(t, ok)
	})

	t.Run("should read changed item over stale copy", func(t *testing.T) {
		changed := withStatus(t, order.Done)
		stale, err := order.RestoreItem(changed.ID(), changed.OrderID(), changed.ProductID(), 1, nil,
			order.InProgress, nil, changed.CreatedAt())
		require.NoError(t, err)

		status, ok := aggregator.Derive(order.Waiting, order.InProgress, changed, []*order.Item{stale, withStatus(t, order.Done)})

		assert.True(t, ok)
		assert.Equal(t, order.Done, status)
	})

	t.Run("should not cascade onto a done order", func(t *testing.T) {
		a := withStatus(t, order.Done)

		_, ok := aggregator.Derive(order.Done, order.InProgress, a, []*order.Item{a})

		assert.False(t, ok)
	})

	t.Run("should reopen done order when an item leaves done", func(t *testing.T) {
		for _, s := range []order.Status{order.Waiting, order.InProgress, order.Postponed, order.Cancelled} {
			item := withStatus(t, s)

			status, ok := aggregator.Derive(order.Done, order.Done, item, []*order.Item{item})

			assert.True(t, ok, s.String())
			assert.Equal(t, order.InProgress, status)
		}
	})

	t.Run("should keep done order when the item was not done", func(t *testing.T) {
		for _, previous := range []order.Status{order.Waiting, order.InProgress, order.Postponed, order.Cancelled} {
			item := withStatus(t, order.Postponed)

			status, ok := aggregator.Derive(order.Done, previous, item, []*order.Item{item})

			assert.False(t, ok, previous.String())
			assert.Equal(t, order.Done, status)
		}
	})

	t.Run("should ignore open items of open orders", func(t *testing.T) {
		item := withStatus(t, order.Cancelled)

		status, ok := aggregator.Derive(order.Waiting, order.Done, item, []*order.Item{item})

		assert.False(t, ok)
		assert.Equal(t, order.Waiting, status)
	})
}

func TestStatusAggregator_Reopen(t *testing.T) {
	aggregator := services.NewStatusAggregator()

	status, ok := aggregator.Reopen(order.Done)
	assert.True(t, ok)
	assert.Equal(t, order.InProgress, status)

	for _, s := range []order.Status{order.Waiting, order.InProgress, order.Postponed, order.Cancelled} {
		status, ok := aggregator.Reopen(s)
		assert.False(t, ok, s.String())
		assert.Equal(t, s, status)
	}
}

func TestStatusAggregator_Reconcile(t *testing.T) {
	aggregator := services.NewStatusAggregator()

	tests := []struct {
		name        string
		orderStatus order.Status
		items       []order.Status
		want        order.Status
		changed     bool
	}{
		{name: "no items", orderStatus: order.Done, want: order.Done},
		{name: "all done", orderStatus: order.InProgress, items: []order.Status{order.Done, order.Done}, want: order.Done, changed: true},
		{name: "new waiting item reopens", orderStatus: order.Done, items: []order.Status{order.Done, order.Waiting}, want: order.InProgress, changed: true},
		{name: "consistent open order", orderStatus: order.Waiting, items: []order.Status{order.Waiting}, want: order.Waiting},
		{name: "consistent done order", orderStatus: order.Done, items: []order.Status{order.Done}, want: order.Done},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]*order.Item, 0, len(tt.items))
			for _, s := range tt.items {
				items = append(items, newItem(t, s))
			}

			got, changed := aggregator.Reconcile(tt.orderStatus, items)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}
