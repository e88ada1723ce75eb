package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of a client's request. It owns the append-only
// history; its items are separate entities loaded alongside it.
//
// Order follows these invariants:
//   - Must reference a client
//   - History is never rewritten: entries are only appended
//   - currentStepIndex is the legacy single-product pointer and is never
//     negative
//
// Entries appended since the order was loaded are tracked so that the
// repository can insert them without touching persisted ones.
type Order struct {
	id               kernel.UUID
	clientID         kernel.UUID
	orderDate        time.Time
	status           Status
	currentStepIndex int
	isPriority       bool
	notes            *string

	history   []HistoryEntry
	committed int

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a waiting order whose history holds a single "Created"
// entry stamped with now.
func NewOrder(id, clientID kernel.UUID, orderDate time.Time, isPriority bool, notes string, now time.Time) (*Order, error) {
	return newOrder(id, clientID, orderDate, isPriority, notes, now, LabelCreated)
}

func newOrder(
	id, clientID kernel.UUID,
	orderDate time.Time,
	isPriority bool,
	notes string,
	now time.Time,
	createdLabel string,
) (*Order, error) {
	o := &Order{
		status:        Waiting,
		isPriority:    isPriority,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setOrderDate(orderDate),
	); err != nil {
		return nil, err
	}
	o.setNotes(notes)

	entry, err := NewHistoryEntry(createdLabel, Waiting, now, "")
	if err != nil {
		return nil, err
	}
	o.history = []HistoryEntry{entry}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. The given history counts
// as already committed.
func RestoreOrder(
	id, clientID kernel.UUID,
	orderDate time.Time,
	status Status,
	currentStepIndex int,
	isPriority bool,
	notes *string,
	history []HistoryEntry,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		isPriority:    isPriority,
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClientID(clientID),
		o.setOrderDate(orderDate),
		o.setStatus(status),
		o.setCurrentStepIndex(currentStepIndex),
	); err != nil {
		return nil, err
	}
	if notes != nil {
		o.setNotes(*notes)
	}

	o.history = slices.Clone(history)
	o.committed = len(o.history)

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

func (o *Order) Status() Status {
	return o.status
}

// CurrentStepIndex is the legacy single-product step pointer.
func (o *Order) CurrentStepIndex() int {
	return o.currentStepIndex
}

func (o *Order) IsPriority() bool {
	return o.isPriority
}

func (o *Order) Notes() *string {
	if o.notes == nil {
		return nil
	}
	n := *o.notes
	return &n
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// History returns a copy of all entries, oldest first.
func (o *Order) History() []HistoryEntry {
	return slices.Clone(o.history)
}

func (o *Order) HistoryLength() int {
	return len(o.history)
}

// LastEntry returns the newest history entry.
func (o *Order) LastEntry() (HistoryEntry, bool) {
	if len(o.history) == 0 {
		return HistoryEntry{}, false
	}
	return o.history[len(o.history)-1], true
}

// UncommittedHistory returns the entries appended since the order was loaded
// or last marked committed.
func (o *Order) UncommittedHistory() []HistoryEntry {
	return slices.Clone(o.history[o.committed:])
}

// CommittedHistoryLength is the number of entries already persisted; it is
// the sequence number of the first uncommitted entry.
func (o *Order) CommittedHistoryLength() int {
	return o.committed
}

func (o *Order) MarkHistoryCommitted() {
	o.committed = len(o.history)
}

// Record appends an entry describing a change of one of the order's items.
// The order status is not touched.
func (o *Order) Record(step string, status Status, at time.Time, notes string) error {
	entry, err := NewHistoryEntry(step, status, at, notes)
	if err != nil {
		return err
	}
	o.history = append(o.history, entry)
	o.updatedAt = at.UTC()
	return nil
}

// ChangeStatus sets the order status and appends an entry labelled step. It
// reports false and records nothing when the status is unchanged.
func (o *Order) ChangeStatus(status Status, step string, at time.Time) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if status == o.status {
		return false, nil
	}

	if err := o.Record(step, status, at, ""); err != nil {
		return false, err
	}
	o.status = status
	return true, nil
}

// Clone creates a waiting copy for the same client with the same priority,
// order date and notes. Its history holds a single "Created (clone)" entry.
func (o *Order) Clone(newID kernel.UUID, now time.Time) (*Order, error) {
	var notes string
	if o.notes != nil {
		notes = *o.notes
	}
	return newOrder(newID, o.clientID, o.orderDate, o.isPriority, notes, now, LabelCreatedClone)
}

// CancelledAt returns the timestamp of the newest entry that moved the order
// to Cancelled, falling back to updatedAt when the history has none.
func (o *Order) CancelledAt() time.Time {
	for i := len(o.history) - 1; i >= 0; i-- {
		if o.history[i].status == Cancelled {
			return o.history[i].timestamp
		}
	}
	return o.updatedAt
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setOrderDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	o.orderDate = date.UTC()
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCurrentStepIndex(index int) error {
	if index < 0 {
		return errs.NewValueIsOutOfRangeError("current step index", index, 0, "last step")
	}
	o.currentStepIndex = index
	return nil
}

func (o *Order) setNotes(notes string) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		o.notes = nil
		return
	}
	o.notes = &notes
}
