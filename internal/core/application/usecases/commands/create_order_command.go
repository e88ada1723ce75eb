package commands

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested product of a new order.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
	Notes     string
}

// CreateOrderCommand represents a client's request for one or more products.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), clientID, time.Now(), false, "", []OrderLine{
//	    {ProductID: flyerID, Quantity: 500},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, items, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	clientID   kernel.UUID
	orderDate  time.Time
	isPriority bool
	notes      string
	lines      []OrderLine

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, clientID kernel.UUID,
	orderDate time.Time,
	isPriority bool,
	notes string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		orderDate:  orderDate,
		isPriority: isPriority,
		notes:      notes,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c CreateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

func (c CreateOrderCommand) IsPriority() bool {
	return c.isPriority
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c CreateOrderCommand) Lines() []OrderLine {
	return slices.Clone(c.lines)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}
	for i, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("product id", fmt.Errorf("line %d: %w", i, err))
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("line %d: %d is not greater than 0", i, line.Quantity))
		}
	}
	c.lines = slices.Clone(lines)
	return nil
}
