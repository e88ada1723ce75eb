package order

import "time"

// ChangedEvent announces the state of an order after a committed change.
type ChangedEvent struct {
	OrderID       string    `json:"order_id"`
	Status        string    `json:"status"`
	HistoryLength int       `json:"history_length"`
	LastStep      string    `json:"last_step"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ChangedEvent describes the order as it stands now.
func (o *Order) ChangedEvent() ChangedEvent {
	e := ChangedEvent{
		OrderID:       o.id.String(),
		Status:        o.status.String(),
		HistoryLength: len(o.history),
		OccurredAt:    o.updatedAt,
	}
	if last, ok := o.LastEntry(); ok {
		e.LastStep = last.step
	}
	return e
}
