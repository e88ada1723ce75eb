package order

import (
	"strings"
	"time"

	"printshop/internal/pkg/errs"
)

// HistoryEntry is one immutable audit record of an order. The zero value is
// not a valid entry; use NewHistoryEntry.
type HistoryEntry struct {
	step      string
	status    Status
	timestamp time.Time
	notes     *string
}

func NewHistoryEntry(step string, status Status, timestamp time.Time, notes string) (HistoryEntry, error) {
	step = strings.TrimSpace(step)
	if step == "" {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history step")
	}
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if timestamp.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history timestamp")
	}

	e := HistoryEntry{step: step, status: status, timestamp: timestamp.UTC()}
	if n := strings.TrimSpace(notes); n != "" {
		e.notes = &n
	}
	return e, nil
}

func (e HistoryEntry) Step() string {
	return e.step
}

func (e HistoryEntry) Status() Status {
	return e.status
}

func (e HistoryEntry) Timestamp() time.Time {
	return e.timestamp
}

func (e HistoryEntry) Notes() *string {
	if e.notes == nil {
		return nil
	}
	n := *e.notes
	return &n
}
