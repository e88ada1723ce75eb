package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is one product line of an order.
//
// Invariants:
//   - quantity is positive
//   - stepIndex is nil until the item starts; when set it addresses one of the
//     product's steps, and it is never set for products without steps
//
// Step bounds depend on the product, so every progress method receives the
// product's step count.
type Item struct {
	id        kernel.UUID
	orderID   kernel.UUID
	productID kernel.UUID
	quantity  int
	notes     *string
	status    Status
	stepIndex *int
	createdAt time.Time

	isConstructed bool
}

// NewItem creates a not yet started item in Waiting status.
func NewItem(id, orderID, productID kernel.UUID, quantity int, notes string, createdAt time.Time) (*Item, error) {
	item := &Item{
		status:        Waiting,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	item.setNotes(notes)

	return item, nil
}

// RestoreItem rebuilds an item from persistence.
func RestoreItem(
	id, orderID, productID kernel.UUID,
	quantity int,
	notes *string,
	status Status,
	stepIndex *int,
	createdAt time.Time,
) (*Item, error) {
	var n string
	if notes != nil {
		n = *notes
	}

	item, err := NewItem(id, orderID, productID, quantity, n, createdAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	item.status = status

	if stepIndex != nil {
		if *stepIndex < 0 {
			return nil, errs.NewValueIsOutOfRangeError("step index", *stepIndex, 0, "last step")
		}
		idx := *stepIndex
		item.stepIndex = &idx
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) Notes() *string {
	if i.notes == nil {
		return nil
	}
	n := *i.notes
	return &n
}

func (i *Item) Status() Status {
	return i.status
}

// StepIndex returns a copy of the current step index, nil when not started.
func (i *Item) StepIndex() *int {
	if i.stepIndex == nil {
		return nil
	}
	idx := *i.stepIndex
	return &idx
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// BelongsTo reports whether the item is a line of the given order.
func (i *Item) BelongsTo(orderID kernel.UUID) bool {
	return i.orderID.IsEqual(orderID)
}

// IsOnLastStep reports whether the item sits on the last of stepCount steps.
// An index past the end, left by a shorter step list, counts as the last step.
func (i *Item) IsOnLastStep(stepCount int) bool {
	return stepCount > 0 && i.stepIndex != nil && *i.stepIndex >= stepCount-1
}

// FitsSteps reports whether the step index addresses one of stepCount steps.
// A not started item fits any step list.
func (i *Item) FitsSteps(stepCount int) bool {
	return i.stepIndex == nil || *i.stepIndex < stepCount
}

// EnterNextStep moves the item one step forward. A not started item enters
// the first step. A waiting item becomes in progress; other statuses are kept.
func (i *Item) EnterNextStep(stepCount int) error {
	if stepCount == 0 {
		return errs.NewInvalidStateError("advance item step", i.id, "no steps to advance")
	}
	if i.status == Done {
		return errs.NewInvalidStateError("advance item step", i.id, "item is already done")
	}
	if i.IsOnLastStep(stepCount) {
		return errs.NewInvalidStateError("advance item step", i.id, "item is on its last step")
	}

	next := 0
	if i.stepIndex != nil {
		next = *i.stepIndex + 1
	}
	if next >= stepCount {
		return errs.NewValueIsOutOfRangeError("step index", next, 0, stepCount-1)
	}

	i.stepIndex = &next
	if i.status == Waiting {
		i.status = InProgress
	}
	return nil
}

// ChangeStatus sets the item status and reports whether anything changed.
// Moving to InProgress with no step index starts the first step when the
// product has steps.
func (i *Item) ChangeStatus(status Status, stepCount int) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if status == i.status {
		return false, nil
	}

	if status == InProgress && i.stepIndex == nil && stepCount > 0 {
		first := 0
		i.stepIndex = &first
	}
	i.status = status
	return true, nil
}

// RollBackTo moves the item back to target, forces InProgress and reports
// whether anything changed. The target may equal the current step but never
// lie beyond it.
func (i *Item) RollBackTo(target, stepCount int) (bool, error) {
	if stepCount == 0 {
		return false, errs.NewInvalidStateError("go to item step", i.id, "product has no steps")
	}
	if target < 0 || target >= stepCount {
		return false, errs.NewInvalidStateError("go to item step", i.id,
			fmt.Sprintf("target step %d is outside 0..%d", target, stepCount-1))
	}

	current := -1
	if i.stepIndex != nil {
		current = *i.stepIndex
	}
	if target > current {
		return false, errs.NewInvalidStateError("go to item step", i.id,
			fmt.Sprintf("target step %d is ahead of current step %d", target, current))
	}
	if target == current && i.status == InProgress {
		return false, nil
	}

	i.stepIndex = &target
	i.status = InProgress
	return true, nil
}

// Reset returns the item to its initial not started state.
func (i *Item) Reset() {
	i.status = Waiting
	i.stepIndex = nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.orderID = id
	return nil
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setNotes(notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		i.notes = nil
		return
	}
	i.notes = &notes
}
