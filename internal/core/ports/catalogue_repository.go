package ports

import (
	"context"

	"printshop/internal/core/domain/model/client"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/product"
)

// ClientRepository defines the persistence contract for clients.
type ClientRepository interface {
	Add(ctx context.Context, c *client.Client) error
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)
	List(ctx context.Context) ([]*client.Client, error)

	// Delete fails with errs.ReferentialConflictError while orders still
	// reference the client.
	Delete(ctx context.Context, id kernel.UUID) error
}

// ProductRepository defines the persistence contract for products.
type ProductRepository interface {
	Add(ctx context.Context, p *product.Product) error
	Update(ctx context.Context, p *product.Product) error
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
	List(ctx context.Context) ([]*product.Product, error)

	// Delete fails with errs.ReferentialConflictError while order items
	// still reference the product.
	Delete(ctx context.Context, id kernel.UUID) error
}
