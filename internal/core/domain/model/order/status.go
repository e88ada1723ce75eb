package order

import (
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

// Status is the lifecycle state of an order or an order item.
//
// State transitions:
//
//	waiting ──> in_progress ──> done
//	   ▲            ▲  │          │
//	   │            │  └──────────┘ (reopen on rollback)
//	   └── postponed / cancelled ──┘ (reactivation)
//
// Any state can move to postponed or cancelled, and done or cancelled can be
// reached directly by an explicit status change. Operations decide which
// transitions they allow; Status itself forbids none.
type Status int

const (
	// Unknown catches uninitialised values and is never persisted.
	Unknown Status = iota
	Waiting
	InProgress
	Postponed
	Cancelled
	Done
)

var statusCodes = map[Status]string{
	Waiting:    "waiting",
	InProgress: "in_progress",
	Postponed:  "postponed",
	Cancelled:  "cancelled",
	Done:       "done",
}

var statusTexts = map[Status]string{
	Waiting:    "Waiting",
	InProgress: "In progress",
	Postponed:  "Postponed",
	Cancelled:  "Cancelled",
	Done:       "Done",
}

// AllStatuses lists the valid statuses in declaration order.
func AllStatuses() []Status {
	return []Status{Waiting, InProgress, Postponed, Cancelled, Done}
}

// ParseStatus converts a persisted or transported code into a Status.
func ParseStatus(code string) (Status, error) {
	code = strings.TrimSpace(code)
	for s, c := range statusCodes {
		if c == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", code))
}

func (s Status) Validate() error {
	if _, ok := statusCodes[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the code used for persistence and transport.
func (s Status) String() string {
	if c, ok := statusCodes[s]; ok {
		return c
	}
	return "unknown"
}

// Text returns the human readable name used in history labels.
func (s Status) Text() string {
	if t, ok := statusTexts[s]; ok {
		return t
	}
	return "Unknown"
}

// Rank orders statuses for display: in progress first, cancelled last.
func (s Status) Rank() int {
	switch s {
	case InProgress:
		return 0
	case Waiting:
		return 1
	case Postponed:
		return 2
	case Done:
		return 3
	case Cancelled:
		return 4
	default:
		return 5
	}
}
