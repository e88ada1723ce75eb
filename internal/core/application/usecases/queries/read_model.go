// Package queries contains read-only operations that build views of the
// print shop state. Queries never modify the record store.
package queries

import "printshop/internal/core/ports"

// ReadModel exposes the repositories a query reads from.
type ReadModel interface {
	ClientRepository() ports.ClientRepository
	ProductRepository() ports.ProductRepository
	OrderRepository() ports.OrderRepository
	OrderItemRepository() ports.OrderItemRepository
}

// ReadModelFactory creates a ReadModel per query execution.
type ReadModelFactory interface {
	Create() ReadModel
}
