package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage the transaction lifecycle; Rollback
// after a successful Commit is a no-op so it can always be deferred.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit writes the outbox messages of every tracked order and commits
	// the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	ClientRepository() ClientRepository
	ProductRepository() ProductRepository
	OrderRepository() OrderRepository
	OrderItemRepository() OrderItemRepository
}
