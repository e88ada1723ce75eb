package order

import (
	"slices"
	"strings"
)

// LegacyView is the single-product projection of an order used by views and
// labels written for the pre-itemised schema. It is computed from the first
// item and is never a source of truth.
type LegacyView struct {
	HasProduct bool
	ProductID  string
	Quantity   int
	Steps      []string
	StepIndex  *int
}

// FirstItem returns the item the legacy view is computed from: the oldest one,
// ties broken by id.
func FirstItem(items []*Item) (*Item, bool) {
	if len(items) == 0 {
		return nil, false
	}
	first := slices.MinFunc(items, func(a, b *Item) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return strings.Compare(a.id.String(), b.id.String())
	})
	return first, true
}

// NewLegacyView builds the legacy view from the first item and the steps of
// its product. Without items the view has no product.
func NewLegacyView(items []*Item, stepsOf func(*Item) []string) LegacyView {
	first, ok := FirstItem(items)
	if !ok {
		return LegacyView{}
	}
	return LegacyView{
		HasProduct: true,
		ProductID:  first.productID.String(),
		Quantity:   first.quantity,
		Steps:      stepsOf(first),
		StepIndex:  first.StepIndex(),
	}
}

// LabelFor evaluates the labeling rule for an order status change on the
// legacy view.
func (v LegacyView) LabelFor(from, to Status) string {
	return Label(LabelContext{
		From:       from,
		To:         to,
		HasProduct: v.HasProduct,
		Steps:      v.Steps,
		StepIndex:  v.StepIndex,
	})
}
