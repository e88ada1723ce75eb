// Package redis caches catalogue reads in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/product"
	"printshop/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a product read may be served from the cache.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "printshop:product:"

type cachedProduct struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Steps       []string `json:"steps"`
}

// CachedProductRepository is a read-through cache in front of a product
// repository. Writes go to the wrapped repository and evict the cached entry.
// Cache failures are logged and fall back to the wrapped repository.
type CachedProductRepository struct {
	next   ports.ProductRepository
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedProductRepository(
	next ports.ProductRepository,
	client redis.Cmdable,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedProductRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedProductRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "ProductCache"),
	}
}

func (r *CachedProductRepository) Add(ctx context.Context, p *product.Product) error {
	return r.next.Add(ctx, p)
}

func (r *CachedProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := r.next.Update(ctx, p); err != nil {
		return err
	}
	r.evict(ctx, p.ID())
	return nil
}

func (r *CachedProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if p, ok := r.lookup(ctx, id); ok {
		return p, nil
	}

	p, err := r.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, p)
	return p, nil
}

func (r *CachedProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	return r.next.List(ctx)
}

func (r *CachedProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachedProductRepository) lookup(ctx context.Context, id kernel.UUID) (*product.Product, bool) {
	raw, err := r.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "product cache read failed", "product_id", id.String(), "error", err)
		}
		return nil, false
	}

	var entry cachedProduct
	if err = json.Unmarshal(raw, &entry); err != nil {
		r.logger.WarnContext(ctx, "discarding malformed product cache entry", "product_id", id.String(), "error", err)
		r.evict(ctx, id)
		return nil, false
	}
	p, err := product.RestoreProduct(id, entry.Name, entry.Description, entry.Steps)
	if err != nil {
		r.evict(ctx, id)
		return nil, false
	}
	return p, true
}

func (r *CachedProductRepository) store(ctx context.Context, p *product.Product) {
	raw, err := json.Marshal(cachedProduct{
		ID:          p.ID().String(),
		Name:        p.Name(),
		Description: p.Description(),
		Steps:       p.Steps(),
	})
	if err != nil {
		return
	}
	if err = r.client.Set(ctx, key(p.ID()), raw, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "product cache write failed", "product_id", p.ID().String(), "error", err)
	}
}

func (r *CachedProductRepository) evict(ctx context.Context, id kernel.UUID) {
	if err := r.client.Del(ctx, key(id)).Err(); err != nil {
		r.logger.WarnContext(ctx, "product cache eviction failed", "product_id", id.String(), "error", err)
	}
}

func key(id kernel.UUID) string {
	return keyPrefix + id.String()
}
