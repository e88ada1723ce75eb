package services

import (
	"fmt"
	"slices"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/pkg/errs"
)

// ItemTransition is the outcome of an item operation.
type ItemTransition struct {
	// Changed is false when the call was a no-op and nothing must be written.
	Changed bool

	// Cascade is the order status the aggregation rule requires; it is only
	// meaningful when CascadeRequired is true. The engine does not apply it:
	// the caller issues a separate SetOrderStatus.
	Cascade         order.Status
	CascadeRequired bool
}

// ProgressEngine applies the progress state machine.
//
// Every successful change appends exactly one entry to the order history.
// Identical status sets are no-ops. Item operations never change the order
// status themselves; they report the cascade the aggregation rule requires.
//
// Example usage:
//
//	engine := services.NewProgressEngine(time.Now)
//	tr, err := engine.AdvanceItemStep(o, item, p, items)
//	if err != nil {
//	    return err
//	}
//	// persist item and o, then apply tr.Cascade with SetOrderStatus
type ProgressEngine struct {
	now        func() time.Time
	aggregator StatusAggregator
}

func NewProgressEngine(now func() time.Time) ProgressEngine {
	if now == nil {
		now = time.Now
	}
	return ProgressEngine{
		now:        now,
		aggregator: NewStatusAggregator(),
	}
}

// AdvanceItemStep moves item one step forward and records the entered step.
// On the last step it completes the item instead. items are all items of o,
// including item.
func (e ProgressEngine) AdvanceItemStep(
	o *order.Order,
	item *order.Item,
	p *product.Product,
	items []*order.Item,
) (ItemTransition, error) {
	if err := e.validate(o, item, p); err != nil {
		return ItemTransition{}, err
	}
	if !p.HasSteps() {
		return ItemTransition{}, errs.NewInvalidStateError("advance item step", item.ID(), "no steps to advance")
	}
	if item.Status() == order.Done {
		return ItemTransition{}, errs.NewInvalidStateError("advance item step", item.ID(), "item is already done")
	}
	if item.IsOnLastStep(p.StepCount()) {
		return e.SetItemStatus(o, item, p, items, order.Done)
	}

	if err := item.EnterNextStep(p.StepCount()); err != nil {
		return ItemTransition{}, err
	}
	step, _ := p.StepName(*item.StepIndex())
	if err := o.Record(step, item.Status(), e.now(), ""); err != nil {
		return ItemTransition{}, err
	}

	return ItemTransition{Changed: true}, nil
}

// SetItemStatus sets the item status, records it with the labeling rule and
// reports the cascade the aggregation rule requires.
func (e ProgressEngine) SetItemStatus(
	o *order.Order,
	item *order.Item,
	p *product.Product,
	items []*order.Item,
	status order.Status,
) (ItemTransition, error) {
	if err := e.validate(o, item, p); err != nil {
		return ItemTransition{}, err
	}

	from := item.Status()
	changed, err := item.ChangeStatus(status, p.StepCount())
	if err != nil || !changed {
		return ItemTransition{}, err
	}

	label := order.Label(order.LabelContext{
		From:       from,
		To:         status,
		HasProduct: true,
		Steps:      p.Steps(),
		StepIndex:  item.StepIndex(),
	})
	if err := o.Record(label, status, e.now(), ""); err != nil {
		return ItemTransition{}, err
	}

	cascade, required := e.aggregator.Derive(o.Status(), from, item, items)
	return ItemTransition{Changed: true, Cascade: cascade, CascadeRequired: required}, nil
}

// GoToItemStep rolls item back to target, forces it in progress and records
// the rollback. Forward jumps are rejected; going to the current step of an
// item already in progress is a no-op.
func (e ProgressEngine) GoToItemStep(
	o *order.Order,
	item *order.Item,
	p *product.Product,
	_ []*order.Item,
	target int,
) (ItemTransition, error) {
	if err := e.validate(o, item, p); err != nil {
		return ItemTransition{}, err
	}

	changed, err := item.RollBackTo(target, p.StepCount())
	if err != nil || !changed {
		return ItemTransition{}, err
	}
	step, _ := p.StepName(target)
	if err := o.Record(order.RollbackLabel(step), order.InProgress, e.now(), ""); err != nil {
		return ItemTransition{}, err
	}

	cascade, required := e.aggregator.Reopen(o.Status())
	return ItemTransition{Changed: true, Cascade: cascade, CascadeRequired: required}, nil
}

// SetOrderStatus sets the order status with a label computed on the legacy
// single-product view. Items are left untouched.
func (e ProgressEngine) SetOrderStatus(o *order.Order, view order.LegacyView, status order.Status) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	return o.ChangeStatus(status, view.LabelFor(o.Status(), status), e.now())
}

// CloneOrder copies o and its items under fresh ids. Cloned items start over
// and keep the source line order.
func (e ProgressEngine) CloneOrder(o *order.Order, items []*order.Item) (*order.Order, []*order.Item, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	now := e.now()
	clone, err := o.Clone(kernel.NewUUID(), now)
	if err != nil {
		return nil, nil, err
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b *order.Item) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})

	cloned := make([]*order.Item, 0, len(sorted))
	for i, src := range sorted {
		var notes string
		if n := src.Notes(); n != nil {
			notes = *n
		}
		item, err := order.NewItem(kernel.NewUUID(), clone.ID(), src.ProductID(), src.Quantity(), notes,
			now.Add(time.Duration(i)*time.Microsecond))
		if err != nil {
			return nil, nil, fmt.Errorf("clone item %s: %w", src.ID(), err)
		}
		cloned = append(cloned, item)
	}

	return clone, cloned, nil
}

func (e ProgressEngine) validate(o *order.Order, item *order.Item, p *product.Product) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if !item.BelongsTo(o.ID()) {
		return errs.NewObjectNotFoundErrorWithCause("order item", item.ID(),
			fmt.Errorf("item belongs to order %s, not %s", item.OrderID(), o.ID()))
	}
	if !item.ProductID().IsEqual(p.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("product",
			fmt.Errorf("item references product %s, not %s", item.ProductID(), p.ID()))
	}
	return nil
}
