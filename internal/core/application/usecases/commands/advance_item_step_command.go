package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrAdvanceItemStepCommandIsNotConstructed = errors.New(
	"AdvanceItemStepCommand must be created via NewAdvanceItemStepCommand constructor",
)

// AdvanceItemStepCommand moves an item to the next step of its product.
//
// Example:
//
//	cmd, err := NewAdvanceItemStepCommand(orderID, itemID)
//	if err != nil {
//	    return err
//	}
//	item, err := handler.Handle(ctx, cmd)
type AdvanceItemStepCommand struct {
	itemRef

	guard guard.ConstructorGuard
}

func NewAdvanceItemStepCommand(orderID, itemID kernel.UUID) (AdvanceItemStepCommand, error) {
	ref, err := newItemRef(orderID, itemID)
	if err != nil {
		return AdvanceItemStepCommand{}, err
	}
	return AdvanceItemStepCommand{itemRef: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceItemStepCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceItemStepCommandIsNotConstructed)
}
