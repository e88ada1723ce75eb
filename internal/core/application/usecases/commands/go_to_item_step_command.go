package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/guard"
)

var ErrGoToItemStepCommandIsNotConstructed = errors.New(
	"GoToItemStepCommand must be created via NewGoToItemStepCommand constructor",
)

// GoToItemStepCommand rolls an item back to an earlier (or its current) step.
// Bounds are checked against the product by the handler.
type GoToItemStepCommand struct {
	itemRef
	target int

	guard guard.ConstructorGuard
}

func NewGoToItemStepCommand(orderID, itemID kernel.UUID, target int) (GoToItemStepCommand, error) {
	ref, err := newItemRef(orderID, itemID)
	if err != nil {
		return GoToItemStepCommand{}, err
	}
	return GoToItemStepCommand{itemRef: ref, target: target, guard: guard.NewConstructorGuard()}, nil
}

func (c GoToItemStepCommand) Validate() error {
	return c.guard.Validate(ErrGoToItemStepCommandIsNotConstructed)
}

func (c GoToItemStepCommand) Target() int {
	return c.target
}
