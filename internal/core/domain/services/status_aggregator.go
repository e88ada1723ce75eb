package services

import (
	"printshop/internal/core/domain/model/order"
)

// StatusAggregator derives the order status implied by a change of one of
// its items.
//
// Business rules:
//   - forward: when an item becomes done and every item of the order is done,
//     the order becomes done
//   - reverse: when the order is done and an item moves away from done, the
//     order goes back to in progress
//   - rollback: a step rollback reopens a done order whatever the item's
//     previous status
type StatusAggregator struct{}

func NewStatusAggregator() StatusAggregator {
	return StatusAggregator{}
}

// Derive returns the status the order must move to after changed was
// updated from previous, and false when the order status stays as it is.
// items are the order's items; the entry with changed's id is read from
// changed itself.
func (StatusAggregator) Derive(
	orderStatus order.Status,
	previous order.Status,
	changed *order.Item,
	items []*order.Item,
) (order.Status, bool) {
	if changed.Status() == order.Done {
		if orderStatus == order.Done {
			return orderStatus, false
		}
		for _, item := range items {
			if item.ID().IsEqual(changed.ID()) {
				continue
			}
			if item.Status() != order.Done {
				return orderStatus, false
			}
		}
		return order.Done, true
	}

	if orderStatus == order.Done && previous == order.Done {
		return order.InProgress, true
	}
	return orderStatus, false
}

// Reopen returns in progress for a done order after one of its items was
// rolled back to an earlier step.
func (StatusAggregator) Reopen(orderStatus order.Status) (order.Status, bool) {
	if orderStatus == order.Done {
		return order.InProgress, true
	}
	return orderStatus, false
}

// Reconcile returns the status the order must move to after items were added
// or removed. An order without items keeps its own status.
func (StatusAggregator) Reconcile(orderStatus order.Status, items []*order.Item) (order.Status, bool) {
	if len(items) == 0 {
		return orderStatus, false
	}

	allDone := true
	for _, item := range items {
		if item.Status() != order.Done {
			allDone = false
			break
		}
	}

	switch {
	case allDone && orderStatus != order.Done:
		return order.Done, true
	case !allDone && orderStatus == order.Done:
		return order.InProgress, true
	default:
		return orderStatus, false
	}
}
