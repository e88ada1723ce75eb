package commands

import (
	"errors"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	ErrSaveProductCommandIsNotConstructed = errors.New(
		"SaveProductCommand must be created via NewSaveProductCommand constructor",
	)
	ErrDeleteProductCommandIsNotConstructed = errors.New(
		"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
	)
)

// SaveProductCommand carries the authoring form of a product. It is used both
// to create and to update a product.
//
// Authoring rules:
//   - at least one process step is required
//   - the terminal "Packaging" step is appended when absent
//
// Example:
//
//	cmd, err := NewSaveProductCommand(kernel.NewUUID(), "Flyer A5", "", []string{"Print", "Cut"})
//	// cmd.Steps() == []string{"Print", "Cut", "Packaging"}
type SaveProductCommand struct {
	productID   kernel.UUID
	name        string
	description string
	steps       []string

	guard guard.ConstructorGuard
}

func NewSaveProductCommand(productID kernel.UUID, name, description string, steps []string) (SaveProductCommand, error) {
	cmd := SaveProductCommand{
		name:        name,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setSteps(steps),
	); err != nil {
		return SaveProductCommand{}, err
	}
	return cmd, nil
}

func (c SaveProductCommand) Validate() error {
	return c.guard.Validate(ErrSaveProductCommandIsNotConstructed)
}

func (c SaveProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c SaveProductCommand) Name() string {
	return c.name
}

func (c SaveProductCommand) Description() string {
	return c.description
}

// Steps returns the process steps, terminated by the packaging step.
func (c SaveProductCommand) Steps() []string {
	return product.WithPackagingStep(c.steps)
}

func (c *SaveProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *SaveProductCommand) setSteps(steps []string) error {
	meaningful := make([]string, 0, len(steps))
	for _, s := range steps {
		if strings.TrimSpace(s) != "" {
			meaningful = append(meaningful, s)
		}
	}
	if len(meaningful) == 0 {
		return errs.NewValueIsRequiredError("process steps")
	}
	c.steps = meaningful
	return nil
}

// DeleteProductCommand removes a product that no order item references.
type DeleteProductCommand struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteProductCommand(productID kernel.UUID) (DeleteProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return DeleteProductCommand{}, err
	}
	return DeleteProductCommand{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductCommandIsNotConstructed)
}

func (c DeleteProductCommand) ProductID() kernel.UUID {
	return c.productID
}
