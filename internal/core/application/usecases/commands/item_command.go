package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
)

// itemRef identifies an item through its owning order.
type itemRef struct {
	orderID kernel.UUID
	itemID  kernel.UUID
}

func newItemRef(orderID, itemID kernel.UUID) (itemRef, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate()); err != nil {
		return itemRef{}, err
	}
	return itemRef{orderID: orderID, itemID: itemID}, nil
}

func (r itemRef) OrderID() kernel.UUID {
	return r.orderID
}

func (r itemRef) ItemID() kernel.UUID {
	return r.itemID
}
