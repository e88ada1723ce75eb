// Package postgres provides the GORM-based Unit of Work shared by the command
// handlers, and the schema of the record store.
//
// The unit of work runs every repository it hands out on one transaction and
// tracks the orders they add or update. Commit writes one order-changed
// outbox message per tracked order inside that same transaction, so an order
// change and its event are persisted together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, WithOutboxTopic("orders.changed"))
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.OrderItemRepository().Update(ctx, item); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns a single transaction; goroutines must not
// share one.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"printshop/internal/adapters/out/postgres/clientrepo"
	"printshop/internal/adapters/out/postgres/dberr"
	"printshop/internal/adapters/out/postgres/orderitemrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/adapters/out/postgres/outboxrepo"
	"printshop/internal/adapters/out/postgres/productrepo"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultOutboxTopic is used when no topic is configured.
const DefaultOutboxTopic = "printshop.order.changed"

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// ProductRepositoryDecorator wraps the product repository of every unit of
// work, e.g. with a cache.
type ProductRepositoryDecorator func(ports.ProductRepository) ports.ProductRepository

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithOutboxTopic sets the topic of the order-changed messages.
func WithOutboxTopic(topic string) Option {
	return func(f *GormUnitOfWorkFactory) {
		if topic != "" {
			f.topic = topic
		}
	}
}

// WithProductRepository decorates the product repository handed out by each
// unit of work.
func WithProductRepository(decorate ProductRepositoryDecorator) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.decorateProducts = decorate
	}
}

// WithClock overrides the time source of outbox messages.
func WithClock(now func() time.Time) Option {
	return func(f *GormUnitOfWorkFactory) {
		if now != nil {
			f.now = now
		}
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances on a GORM connection.
type GormUnitOfWorkFactory struct {
	db               *gorm.DB
	topic            string
	now              func() time.Time
	decorateProducts ProductRepositoryDecorator
}

func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{
		db:    db,
		topic: DefaultOutboxTopic,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		topic:             f.topic,
		now:               f.now,
		decorateProducts:  f.decorateProducts,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the orders
// modified within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	topic             string
	now               func() time.Time
	decorateProducts  ProductRepositoryDecorator
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again on an open unit of work is
// a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return dberr.Translate("begin transaction", "transaction", "-", tx.Error)
	}
	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit writes the outbox messages of the tracked orders and commits.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	messages, err := uow.outboxMessages()
	if err != nil {
		return err
	}
	if err = outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...); err != nil {
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return dberr.Translate("commit transaction", "transaction", "-", err)
}

// Rollback discards the transaction. It is a no-op when no transaction is
// open, so it can be deferred right after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ClientRepository() ports.ClientRepository {
	return clientrepo.NewGormClientRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	var repo ports.ProductRepository = productrepo.NewGormProductRepository(uow.conn())
	if uow.decorateProducts != nil {
		repo = uow.decorateProducts(repo)
	}
	return repo
}

// OrderRepository returns an order repository whose added and updated orders
// are tracked for the outbox.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderItemRepository() ports.OrderItemRepository {
	return orderitemrepo.NewGormOrderItemRepository(uow.conn())
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Repositories call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// outboxMessages builds one message per tracked order, describing its state
// as of the last write.
func (uow *GormUnitOfWork) outboxMessages() ([]ports.OutboxMessage, error) {
	latest := make(map[kernel.UUID]*order.Order, len(uow.trackedAggregates))
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		o, ok := tracked.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		if _, seen := latest[tracked.ID]; !seen {
			ids = append(ids, tracked.ID)
		}
		latest[tracked.ID] = o
	}

	now := uow.now().UTC()
	messages := make([]ports.OutboxMessage, 0, len(ids))
	for i, id := range ids {
		payload, err := json.Marshal(latest[id].ChangedEvent())
		if err != nil {
			return nil, err
		}
		messages = append(messages, ports.OutboxMessage{
			ID:        kernel.NewUUID().String(),
			Topic:     uow.topic,
			Key:       id.String(),
			Payload:   payload,
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
		})
	}
	return messages, nil
}
