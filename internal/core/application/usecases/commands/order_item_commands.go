package commands

import (
	"errors"
	"fmt"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	ErrAddOrderItemCommandIsNotConstructed = errors.New(
		"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
	)
	ErrRemoveOrderItemCommandIsNotConstructed = errors.New(
		"RemoveOrderItemCommand must be created via NewRemoveOrderItemCommand constructor",
	)
)

// AddOrderItemCommand adds a product line to an existing order.
type AddOrderItemCommand struct {
	itemRef
	line OrderLine

	guard guard.ConstructorGuard
}

func NewAddOrderItemCommand(orderID, itemID kernel.UUID, line OrderLine) (AddOrderItemCommand, error) {
	ref, err := newItemRef(orderID, itemID)
	if err != nil {
		return AddOrderItemCommand{}, err
	}
	if err = line.ProductID.Validate(); err != nil {
		return AddOrderItemCommand{}, errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	if line.Quantity <= 0 {
		return AddOrderItemCommand{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", line.Quantity))
	}
	return AddOrderItemCommand{itemRef: ref, line: line, guard: guard.NewConstructorGuard()}, nil
}

func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

func (c AddOrderItemCommand) Line() OrderLine {
	return c.line
}

// RemoveOrderItemCommand removes one product line from an order.
type RemoveOrderItemCommand struct {
	itemRef

	guard guard.ConstructorGuard
}

func NewRemoveOrderItemCommand(orderID, itemID kernel.UUID) (RemoveOrderItemCommand, error) {
	ref, err := newItemRef(orderID, itemID)
	if err != nil {
		return RemoveOrderItemCommand{}, err
	}
	return RemoveOrderItemCommand{itemRef: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrderItemCommandIsNotConstructed)
}
