package commands

import (
	"context"
	"fmt"

	"printshop/internal/core/domain/model/product"
	"printshop/internal/pkg/errs"
)

// CreateProductCommandHandler persists a new product.
type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{uowFactory: uowFactory}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd SaveProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := product.NewProduct(cmd.ProductID(), cmd.Name(), cmd.Description(), cmd.Steps())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProductCommandHandler replaces the name, description and steps of an
// existing product. Items already on a step keep their index, so the update is
// refused with errs.InvalidStateError while an item sits beyond the new last
// step.
type UpdateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewUpdateProductCommandHandler(uowFactory ProductUoWFactory) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{uowFactory: uowFactory}
}

func (h UpdateProductCommandHandler) Handle(ctx context.Context, cmd SaveProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProductRepository()
	p, err := repo.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}
	if err = p.Update(cmd.Name(), cmd.Description(), cmd.Steps()); err != nil {
		return nil, err
	}

	items, err := uow.OrderItemRepository().ListByProduct(ctx, p.ID())
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if !item.FitsSteps(p.StepCount()) {
			return nil, errs.NewInvalidStateError("update product", p.ID(),
				fmt.Sprintf("item %s of order %s is on step %d, beyond the %d new steps",
					item.ID(), item.OrderID(), *item.StepIndex()+1, p.StepCount()))
		}
	}

	if err = repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProductCommandHandler deletes a product. The store refuses the delete
// with errs.ReferentialConflictError while order items reference it.
type DeleteProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewDeleteProductCommandHandler(uowFactory ProductUoWFactory) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{uowFactory: uowFactory}
}

func (h DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ProductRepository().Delete(ctx, cmd.ProductID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
