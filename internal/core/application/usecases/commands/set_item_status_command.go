package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/guard"
)

var ErrSetItemStatusCommandIsNotConstructed = errors.New(
	"SetItemStatusCommand must be created via NewSetItemStatusCommand constructor",
)

// SetItemStatusCommand forces the status of an item.
type SetItemStatusCommand struct {
	itemRef
	status order.Status

	guard guard.ConstructorGuard
}

func NewSetItemStatusCommand(orderID, itemID kernel.UUID, status order.Status) (SetItemStatusCommand, error) {
	ref, err := newItemRef(orderID, itemID)
	if err = errors.Join(err, status.Validate()); err != nil {
		return SetItemStatusCommand{}, err
	}
	return SetItemStatusCommand{itemRef: ref, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c SetItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetItemStatusCommandIsNotConstructed)
}

func (c SetItemStatusCommand) Status() order.Status {
	return c.status
}
