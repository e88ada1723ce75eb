package commands

import (
	"errors"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/guard"
)

var (
	ErrSetOrderStatusCommandIsNotConstructed = errors.New(
		"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
	)
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
	ErrCloneOrderCommandIsNotConstructed = errors.New(
		"CloneOrderCommand must be created via NewCloneOrderCommand constructor",
	)
)

// SetOrderStatusCommand forces the status of an order. Items are not changed.
type SetOrderStatusCommand struct {
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(orderID kernel.UUID, status order.Status) (SetOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return SetOrderStatusCommand{}, err
	}
	return SetOrderStatusCommand{orderID: orderID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetOrderStatusCommand) Status() order.Status {
	return c.status
}

// DeleteOrderCommand removes an order with its items and history.
type DeleteOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.UUID) (DeleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CloneOrderCommand duplicates an order and its items as a fresh waiting order.
type CloneOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCloneOrderCommand(orderID kernel.UUID) (CloneOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CloneOrderCommand{}, err
	}
	return CloneOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CloneOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloneOrderCommandIsNotConstructed)
}

func (c CloneOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
