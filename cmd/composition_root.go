package cmd

import (
	"log/slog"
	"time"

	httpin "printshop/internal/adapters/in/http"
	"printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/postgres/outboxrepo"
	redisout "printshop/internal/adapters/out/redis"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

// NewCompositionRoot wires the use cases onto gormDB. A nil redisClient
// disables the product cache.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient redis.Cmdable,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	opts := []postgres.Option{postgres.WithOutboxTopic(configs.KafkaOrderChangedTopic)}
	if redisClient != nil {
		opts = append(opts, postgres.WithProductRepository(func(next ports.ProductRepository) ports.ProductRepository {
			return redisout.NewCachedProductRepository(next, redisClient, configs.ProductCacheTTL, logger)
		}))
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, opts...),
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) newProductUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) newReadModelFactory() queries.ReadModelFactory {
	return FuncReadModelFactory(func() queries.ReadModel {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) newEngine() services.ProgressEngine {
	return services.NewProgressEngine(c.now)
}

func (c *CompositionRoot) CreateCreateClientCommandHandler() commands.CreateClientCommandHandler {
	return commands.NewCreateClientCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateDeleteClientCommandHandler() commands.DeleteClientCommandHandler {
	return commands.NewDeleteClientCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.newProductUoWFactory())
}

func (c *CompositionRoot) CreateUpdateProductCommandHandler() commands.UpdateProductCommandHandler {
	return commands.NewUpdateProductCommandHandler(c.newProductUoWFactory())
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() commands.DeleteProductCommandHandler {
	return commands.NewDeleteProductCommandHandler(c.newProductUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.newUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.newUoWFactory())
}

func (c *CompositionRoot) CreateCloneOrderCommandHandler() commands.CloneOrderCommandHandler {
	return commands.NewCloneOrderCommandHandler(c.newUoWFactory(), c.newEngine())
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.newUoWFactory(), c.newEngine())
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(c.newUoWFactory(), c.newEngine(), c.now)
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.newUoWFactory(), c.newEngine())
}

func (c *CompositionRoot) CreateAdvanceItemStepCommandHandler() commands.AdvanceItemStepCommandHandler {
	return commands.NewAdvanceItemStepCommandHandler(c.newUoWFactory(), c.newEngine())
}

func (c *CompositionRoot) CreateGoToItemStepCommandHandler() commands.GoToItemStepCommandHandler {
	return commands.NewGoToItemStepCommandHandler(c.newUoWFactory(), c.newEngine())
}

func (c *CompositionRoot) CreateSetItemStatusCommandHandler() commands.SetItemStatusCommandHandler {
	return commands.NewSetItemStatusCommandHandler(c.newUoWFactory(), c.newEngine())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(outboxrepo.NewGormOutboxRepository(c.gormDB), c.publisher, c.now)
}

func (c *CompositionRoot) CreateListClientsQueryHandler() queries.ListClientsQueryHandler {
	return queries.NewListClientsQueryHandler(c.newReadModelFactory())
}

func (c *CompositionRoot) CreateListProductsQueryHandler() queries.ListProductsQueryHandler {
	return queries.NewListProductsQueryHandler(c.newReadModelFactory())
}

func (c *CompositionRoot) CreateGetBoardQueryHandler() queries.GetBoardQueryHandler {
	return queries.NewGetBoardQueryHandler(c.newReadModelFactory(), c.now)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.newReadModelFactory())
}

func (c *CompositionRoot) CreateListOrderItemsQueryHandler() queries.ListOrderItemsQueryHandler {
	return queries.NewListOrderItemsQueryHandler(c.gormDB)
}

// CreateServer assembles the HTTP server from every use case.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		httpin.Commands{
			CreateClient:    c.CreateCreateClientCommandHandler(),
			DeleteClient:    c.CreateDeleteClientCommandHandler(),
			CreateProduct:   c.CreateCreateProductCommandHandler(),
			UpdateProduct:   c.CreateUpdateProductCommandHandler(),
			DeleteProduct:   c.CreateDeleteProductCommandHandler(),
			CreateOrder:     c.CreateCreateOrderCommandHandler(),
			DeleteOrder:     c.CreateDeleteOrderCommandHandler(),
			CloneOrder:      c.CreateCloneOrderCommandHandler(),
			SetOrderStatus:  c.CreateSetOrderStatusCommandHandler(),
			AddOrderItem:    c.CreateAddOrderItemCommandHandler(),
			RemoveOrderItem: c.CreateRemoveOrderItemCommandHandler(),
			AdvanceItemStep: c.CreateAdvanceItemStepCommandHandler(),
			GoToItemStep:    c.CreateGoToItemStepCommandHandler(),
			SetItemStatus:   c.CreateSetItemStatusCommandHandler(),
		},
		httpin.Queries{
			ListClients:    c.CreateListClientsQueryHandler(),
			ListProducts:   c.CreateListProductsQueryHandler(),
			GetBoard:       c.CreateGetBoardQueryHandler(),
			GetOrder:       c.CreateGetOrderQueryHandler(),
			ListOrderItems: c.CreateListOrderItemsQueryHandler(),
		},
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRelayOutboxCommandHandler(), c.configs.OutboxRelaySchedule, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncReadModelFactory func() queries.ReadModel

func (f FuncReadModelFactory) Create() queries.ReadModel {
	return f()
}
