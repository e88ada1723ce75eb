package order

import (
	"cmp"
	"slices"
	"time"
)

// CancelledVisibility is how long a cancelled order stays on active views.
const CancelledVisibility = 48 * time.Hour

// IsVisibleOnBoard hides cancelled orders once CancelledVisibility has passed
// since their cancellation.
func (o *Order) IsVisibleOnBoard(now time.Time) bool {
	if o.status != Cancelled {
		return true
	}
	return now.Sub(o.CancelledAt()) < CancelledVisibility
}

// CompareForBoard orders orders for the board. Keys, in order:
//  1. priority orders first
//  2. non-cancelled before cancelled
//  3. status rank (in progress, waiting, postponed, done)
//  4. most recent order date first, then most recently created
func CompareForBoard(a, b *Order) int {
	if a.isPriority != b.isPriority {
		if a.isPriority {
			return -1
		}
		return 1
	}

	aCancelled, bCancelled := a.status == Cancelled, b.status == Cancelled
	if aCancelled != bCancelled {
		if bCancelled {
			return -1
		}
		return 1
	}

	if c := cmp.Compare(a.status.Rank(), b.status.Rank()); c != 0 {
		return c
	}
	if c := b.orderDate.Compare(a.orderDate); c != 0 {
		return c
	}
	return b.createdAt.Compare(a.createdAt)
}

// SortForBoard sorts orders in place with CompareForBoard.
func SortForBoard(orders []*Order) {
	slices.SortStableFunc(orders, CompareForBoard)
}

// VisibleOnBoard returns the orders visible at now, sorted for the board.
func VisibleOnBoard(orders []*Order, now time.Time) []*Order {
	visible := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o.IsVisibleOnBoard(now) {
			visible = append(visible, o)
		}
	}
	SortForBoard(visible)
	return visible
}
