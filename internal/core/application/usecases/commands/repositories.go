// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"printshop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OrderItemRepoFactory interface {
		OrderItemRepository() ports.OrderItemRepository
	}

	// ProductUoW manages transactions for catalogue operations. Items are
	// read to keep step lists consistent with work in progress.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
		OrderItemRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// UoW manages transactions across clients, products, orders and items.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   itemRepo := uow.OrderItemRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ClientRepoFactory
		ProductRepoFactory
		OrderRepoFactory
		OrderItemRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
