package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/compat"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/config"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/converter"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/migrator"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	componentrepo "github.com/MarkCnw/I-Have-Gpu-sub000/internal/repository/component"
	orderrepo "github.com/MarkCnw/I-Have-Gpu-sub000/internal/repository/order"
	selectionrepo "github.com/MarkCnw/I-Have-Gpu-sub000/internal/repository/selection"
	buildsvc "github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/build"
	catalogsvc "github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/catalog"
	checkoutconsumer "github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/consumer/checkout"
	ordersvc "github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/order"
	statusproducer "github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/producer/status"
	buildhttp "github.com/MarkCnw/I-Have-Gpu-sub000/internal/transport/http/build/v1"
	cataloghttp "github.com/MarkCnw/I-Have-Gpu-sub000/internal/transport/http/catalog/v1"
	orderhttp "github.com/MarkCnw/I-Have-Gpu-sub000/internal/transport/http/order/v1"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/closer"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka/consumer"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka/middleware"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka/producer"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/logger"
)

type Converter interface {
	StatusChangedToPayload(m model.StatusChanged) ([]byte, error)
	CheckoutToModel(data []byte) (model.CheckoutEvent, error)
}

type ComponentRepository interface {
	catalogsvc.ComponentRepository
	componentrepo.BatchCreator
	Count(ctx context.Context) (int64, error)
}

type CatalogService interface {
	cataloghttp.CatalogService
	ordersvc.CatalogClient
}

type OrderService interface {
	orderhttp.OrderService
	checkoutconsumer.Service
}

type CheckoutConsumer interface {
	RunCheckoutConsume(ctx context.Context) error
}

type di struct {
	mongoClient   *mongo.Client
	componentColl *mongo.Collection

	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator

	componentRepository ComponentRepository
	orderRepository     ordersvc.OrderRepository
	selectionRepository buildsvc.SelectionRepository

	consumerGroup    sarama.ConsumerGroup
	checkoutKafka    kafka.Consumer
	checkoutConsumer CheckoutConsumer

	syncProducer        sarama.SyncProducer
	statusChangedKafka  kafka.Producer
	statusEventProducer ordersvc.StatusProducer

	conv Converter

	catalogService CatalogService
	buildService   buildhttp.BuildService
	orderService   OrderService

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongoClient == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v\n", err))
		}

		d.mongoClient = mongoClient
	}

	return d.mongoClient
}

func (d *di) ComponentsCollection(ctx context.Context) *mongo.Collection {
	if d.componentColl == nil {
		d.componentColl = d.MongoDB(ctx).
			Database(config.C().Mongo.DatabaseName()).
			Collection(config.C().Mongo.ComponentsCollection())

		if err := ensureComponentIndexes(ctx, d.componentColl); err != nil {
			panic(fmt.Sprintf("failed to ensure indexes: %v\n", err))
		}
	}

	return d.componentColl
}

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) ComponentRepository(ctx context.Context) ComponentRepository {
	if d.componentRepository == nil {
		d.componentRepository = componentrepo.NewComponentRepository(d.ComponentsCollection(ctx))
	}

	return d.componentRepository
}

func (d *di) OrderRepository(ctx context.Context) ordersvc.OrderRepository {
	if d.orderRepository == nil {
		d.orderRepository = orderrepo.NewOrderRepository(d.DBPool(ctx))
	}

	return d.orderRepository
}

func (d *di) SelectionRepository(_ context.Context) buildsvc.SelectionRepository {
	if d.selectionRepository == nil {
		d.selectionRepository = selectionrepo.NewSelectionRepository()
	}

	return d.selectionRepository
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ConsumerGroupID(),
			cfg.Kafka.CheckoutConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return d.consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) CheckoutKafkaConsumer(ctx context.Context) kafka.Consumer {
	if d.checkoutKafka == nil {
		d.checkoutKafka = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.CheckoutTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.checkoutKafka
}

func (d *di) CheckoutConsumer(ctx context.Context) CheckoutConsumer {
	if d.checkoutConsumer == nil {
		d.checkoutConsumer = checkoutconsumer.NewCheckoutConsumer(
			d.CheckoutKafkaConsumer(ctx),
			d.KafkaConverter(ctx),
			d.OrderService(ctx),
		)
	}

	return d.checkoutConsumer
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.StatusChangedProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) StatusChangedKafkaProducer(ctx context.Context) kafka.Producer {
	if d.statusChangedKafka == nil {
		d.statusChangedKafka = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.StatusChangedTopic(),
			logger.L(),
		)
	}

	return d.statusChangedKafka
}

func (d *di) StatusProducer(ctx context.Context) ordersvc.StatusProducer {
	if d.statusEventProducer == nil {
		d.statusEventProducer = statusproducer.NewStatusProducer(
			d.StatusChangedKafkaProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.statusEventProducer
}

func (d *di) CatalogService(ctx context.Context) CatalogService {
	if d.catalogService == nil {
		d.catalogService = catalogsvc.NewCatalogService(
			d.ComponentRepository(ctx),
			config.C().Server.DBReadTimeout(),
		)
	}

	return d.catalogService
}

func (d *di) BuildService(ctx context.Context) buildhttp.BuildService {
	if d.buildService == nil {
		d.buildService = buildsvc.NewBuildService(
			d.SelectionRepository(ctx),
			d.CatalogService(ctx),
			compat.Default(),
			config.C().Server.DBReadTimeout(),
		)
	}

	return d.buildService
}

func (d *di) OrderService(ctx context.Context) OrderService {
	if d.orderService == nil {
		d.orderService = ordersvc.NewOrderService(
			d.OrderRepository(ctx),
			d.CatalogService(ctx),
			d.StatusProducer(ctx),
			config.C().Orders.AllowTerminalOverride(),
			config.C().Server.DBReadTimeout(),
			config.C().Server.DBWriteTimeout(),
		)
	}

	return d.orderService
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}

func (d *di) RegisterHandlers(ctx context.Context) {
	r := d.Router(ctx)

	r.Route("/api/v1", func(r chi.Router) {
		cataloghttp.NewCatalogHandler(d.CatalogService(ctx)).Register(r)
		buildhttp.NewBuildHandler(d.BuildService(ctx)).Register(r)
		orderhttp.NewOrderHandler(d.OrderService(ctx)).Register(r)
	})
}

func ensureComponentIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "slot", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}, options.CreateIndexes())

	return err
}
