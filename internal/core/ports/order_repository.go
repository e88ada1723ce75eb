// Package ports defines the contracts between the print shop core and its
// infrastructure: the record store repositories, the unit of work that binds
// them to one transaction, and the outbound event publisher.
package ports

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations return errs.ObjectNotFoundError for unknown ids,
// errs.ReferentialConflictError when the store refuses a write because of
// references, and errs.StoreUnavailableError for any other store failure.
type OrderRepository interface {
	// Add persists a new order together with its history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order fields and appends its uncommitted history
	// entries. Persisted entries are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its full history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List retrieves every order with its history.
	List(ctx context.Context) ([]*order.Order, error)

	// ListByClient retrieves the orders placed by a client.
	ListByClient(ctx context.Context, clientID kernel.UUID) ([]*order.Order, error)

	// Delete removes an order; its items and history go with it.
	Delete(ctx context.Context, id kernel.UUID) error
}

// OrderItemRepository defines the persistence contract for order items.
type OrderItemRepository interface {
	Add(ctx context.Context, item *order.Item) error
	Update(ctx context.Context, item *order.Item) error
	Get(ctx context.Context, id kernel.UUID) (*order.Item, error)

	// ListByOrder retrieves the items of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Item, error)

	// ListByProduct retrieves every item, of any order, made of a product.
	ListByProduct(ctx context.Context, productID kernel.UUID) ([]*order.Item, error)

	Delete(ctx context.Context, id kernel.UUID) error
}
