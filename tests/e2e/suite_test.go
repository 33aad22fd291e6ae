//go:build integration

package e2e

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	tc "github.com/testcontainers/testcontainers-go"
	kafkaTc "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/app"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/converter"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/migrator"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	repository "github.com/MarkCnw/I-Have-Gpu-sub000/internal/repository/order"
	checkoutconsumer "github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/consumer/checkout"
	service "github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/order"
	statusproducer "github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/producer/status"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka/consumer"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka/middleware"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka/producer"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/logger"
)

const (
	pgImage = "postgres:17.0-alpine3.20"

	pgUser       = "storefront-user"
	pgPass       = "12CXZ43_U_w"
	pgDB         = "storefront-db"
	migrationDir = "../../migrations"

	kafkaImage = "confluentinc/cp-kafka:7.6.1"

	topicCheckout      = "cart.checkout"
	topicStatusChanged = "order.status.changed"
	consumerGroupID    = "storefront-group-cart-checkout"

	cpuID   = "cpu-amd-ryzen-7-7700x"
	boardID = "mb-asus-tuf-b650-plus"
)

var (
	ctx context.Context

	pgC   *postgres.PostgresContainer
	pool  *pgxpool.Pool
	dbURL string

	kafkaC       tc.Container
	kafkaBrokers []string

	repo           service.OrderRepository
	ordSvc         app.OrderService
	cartConsumer   app.CheckoutConsumer
	statusProducer service.StatusProducer
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Repository Integration Suite")
}

var _ = BeforeSuite(func() {
	ctx = context.Background()

	By("starting postgres container")
	var err error
	logger.SetNopLogger()
	pgC, err = postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(pgDB),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPass),
		tc.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	Expect(err).NotTo(HaveOccurred())

	By("building postgres connection string")
	dbURL, err = pgC.ConnectionString(ctx, "sslmode=disable")
	Expect(err).NotTo(HaveOccurred())

	By("creating pgx pool")
	pool, err = pgxpool.New(ctx, dbURL)
	Expect(err).NotTo(HaveOccurred())

	Eventually(func(g Gomega) {
		err := pool.Ping(ctx)
		g.Expect(err).NotTo(HaveOccurred())
	}).WithTimeout(10 * time.Second).WithPolling(200 * time.Millisecond).Should(Succeed())

	migrator := migrator.NewMigrator(
		stdlib.OpenDBFromPool(pool),
		migrationDir,
	)

	By("running migrations")
	err = migrator.Up()
	Expect(err).NotTo(HaveOccurred())
	defer migrator.Close()

	By("starting kafka container (cp-kafka)")
	kafkaC, kafkaBrokers, err = runKafka(ctx)
	Expect(err).NotTo(HaveOccurred())

	By("setting env for app config (Kafka brokers/topics/group)")
	Expect(os.Setenv("KAFKA_BROKERS", kafkaBrokers[0])).To(Succeed())
	Expect(os.Setenv("CART_CHECKOUT_CONSUMER_GROUP_ID", "storefront-it")).To(Succeed())
	Expect(os.Setenv("CART_CHECKOUT_TOPIC_NAME", topicCheckout)).To(Succeed())
	Expect(os.Setenv("ORDER_STATUS_CHANGED_TOPIC_NAME", topicStatusChanged)).To(Succeed())

	By("creating kafka topics")
	Expect(createTopics(ctx, kafkaBrokers, topicCheckout, topicStatusChanged)).To(Succeed())

	By("creating repository")
	repo = repository.NewOrderRepository(pool)

	statusChangedProducerConfig := sarama.NewConfig()
	statusChangedProducerConfig.Version = sarama.V4_0_0_0
	statusChangedProducerConfig.Producer.Return.Successes = true

	p, err := sarama.NewSyncProducer(kafkaBrokers, statusChangedProducerConfig)
	Expect(err).NotTo(HaveOccurred())

	scProducer := producer.NewProducer(p, topicStatusChanged, logger.L())
	conv := converter.NewKafkaConverter()

	statusProducer = statusproducer.NewStatusProducer(scProducer, conv)

	catalog := newStubCatalogClient()
	ordSvc = service.NewOrderService(repo, catalog, statusProducer, false, 2*time.Second, 2*time.Second)

	checkoutConsumerConfig := sarama.NewConfig()
	checkoutConsumerConfig.Version = sarama.V4_0_0_0
	checkoutConsumerConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	checkoutConsumerConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGr, err := sarama.NewConsumerGroup(
		kafkaBrokers,
		consumerGroupID,
		checkoutConsumerConfig,
	)
	Expect(err).NotTo(HaveOccurred())

	ccConsumer := consumer.NewConsumer(
		consumerGr,
		[]string{
			topicCheckout,
		},
		logger.L(),
		middleware.Recovery(logger.L()),
		middleware.Logging(logger.L()),
	)

	cartConsumer = checkoutconsumer.NewCheckoutConsumer(ccConsumer, conv, ordSvc)
	By("starting cart checkout consumer in background")
	consumerErrCh := make(chan error)
	go func() {
		consumerErrCh <- cartConsumer.RunCheckoutConsume(ctx)
	}()
	Consistently(consumerErrCh, 2*time.Second).ShouldNot(Receive())
})

var _ = AfterSuite(func() {
	if pool != nil {
		pool.Close()
	}
	if pgC != nil {
		_ = pgC.Terminate(ctx)
	}
	mustTerminate(ctx, kafkaC)
})

var _ = BeforeEach(func() {
	By("cleaning orders table")
	_, err := pool.Exec(ctx, "TRUNCATE TABLE orders RESTART IDENTITY CASCADE")
	Expect(err).NotTo(HaveOccurred())
})

var _ = Describe("Order repository", func() {
	Context("Create + OrderByID", func() {
		It("creates order row in DB and can be fetched", func() {
			userID := uuid.New()

			ord := &model.Order{
				UserID: userID,
				Items: []model.OrderItem{
					{ComponentID: cpuID, Quantity: 1, UnitPriceCents: 1290000},
				},
				TotalCents: 1290000,
				Status:     model.StatusPending,
			}

			By("creating order via repository")
			id, err := repo.Create(ctx, ord)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).NotTo(Equal(uuid.Nil))

			By("checking row exists in DB via direct SQL")
			var (
				gotID         uuid.UUID
				gotUserID     uuid.UUID
				gotRawItems   []byte
				gotTotalCents int64
				gotStatus     model.OrderStatus
				gotVersion    int64
			)

			err = pool.QueryRow(ctx,
				`SELECT id, user_id, items, total_cents, status, version
				 FROM orders WHERE id = $1`,
				id,
			).Scan(&gotID, &gotUserID, &gotRawItems, &gotTotalCents, &gotStatus, &gotVersion)
			Expect(err).NotTo(HaveOccurred())

			var gotItems []model.OrderItem
			Expect(json.Unmarshal(gotRawItems, &gotItems)).To(Succeed())

			Expect(gotID).To(Equal(id))
			Expect(gotUserID).To(Equal(userID))
			Expect(gotItems).To(Equal(ord.Items))
			Expect(gotTotalCents).To(Equal(int64(1290000)))
			Expect(gotStatus).To(Equal(model.StatusPending))
			Expect(gotVersion).To(Equal(int64(1)))

			By("fetching order via repository OrderByID")
			gotOrd, err := repo.OrderByID(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(gotOrd.ID).To(Equal(id))
			Expect(gotOrd.UserID).To(Equal(userID))
			Expect(gotOrd.Items).To(Equal(ord.Items))
			Expect(gotOrd.TotalCents).To(Equal(int64(1290000)))
			Expect(gotOrd.Status).To(Equal(model.StatusPending))
			Expect(gotOrd.Version).To(Equal(int64(1)))
		})

		It("OrderByID returns ErrOrderNotFound when missing", func() {
			_, err := repo.OrderByID(ctx, uuid.New())
			Expect(err).To(Equal(model.ErrOrderNotFound))
		})
	})

	Context("Update", func() {
		It("bumps version on every successful write", func() {
			id, err := repo.Create(ctx, &model.Order{
				UserID: uuid.New(),
				Items: []model.OrderItem{
					{ComponentID: boardID, Quantity: 1, UnitPriceCents: 629000},
				},
				TotalCents: 629000,
				Status:     model.StatusPending,
			})
			Expect(err).NotTo(HaveOccurred())

			ord, err := repo.OrderByID(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(ord.Version).To(Equal(int64(1)))

			proof := "slips/2026/08/abc.jpg"
			ord.Status = model.StatusVerifying
			ord.PaymentProof = &proof

			By("updating via repository")
			Expect(repo.Update(ctx, ord)).To(Succeed())
			Expect(ord.Version).To(Equal(int64(2)))

			By("verifying DB state via direct SQL")
			var gotStatus model.OrderStatus
			var gotProof *string
			var gotVersion int64

			err = pool.QueryRow(ctx,
				`SELECT status, payment_proof, version FROM orders WHERE id=$1`,
				id,
			).Scan(&gotStatus, &gotProof, &gotVersion)
			Expect(err).NotTo(HaveOccurred())

			Expect(gotStatus).To(Equal(model.StatusVerifying))
			Expect(gotProof).NotTo(BeNil())
			Expect(*gotProof).To(Equal(proof))
			Expect(gotVersion).To(Equal(int64(2)))
		})

		It("returns ErrStaleWrite when version does not match", func() {
			id, err := repo.Create(ctx, &model.Order{
				UserID: uuid.New(),
				Items: []model.OrderItem{
					{ComponentID: cpuID, Quantity: 1, UnitPriceCents: 1290000},
				},
				TotalCents: 1290000,
				Status:     model.StatusPending,
			})
			Expect(err).NotTo(HaveOccurred())

			first, err := repo.OrderByID(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			stale, err := repo.OrderByID(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			first.Status = model.StatusVerifying
			Expect(repo.Update(ctx, first)).To(Succeed())

			stale.Status = model.StatusCancelled
			err = repo.Update(ctx, stale)
			Expect(errors.Is(err, model.ErrStaleWrite)).To(BeTrue())
		})

		It("returns ErrOrderNotFound when updating missing order", func() {
			err := repo.Update(ctx, &model.Order{
				ID:      uuid.New(),
				Status:  model.StatusCancelled,
				Version: 1,
			})
			Expect(err).To(Equal(model.ErrOrderNotFound))
		})
	})
})

var _ = Describe("Checkout to shipping flow", func() {
	It("creates order from checkout event and publishes status changes", func() {
		userID := uuid.New()

		By("publishing checkout event to cart.checkout")
		checkoutPayload, err := json.Marshal(map[string]any{
			"event_id": uuid.NewString(),
			"user_id":  userID.String(),
			"lines": []map[string]any{
				{"component_id": cpuID, "quantity": 1},
				{"component_id": boardID, "quantity": 1},
			},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(sendCheckout(kafkaBrokers, userID, checkoutPayload)).To(Succeed())

		By("waiting until order appears in DB")
		var orderID uuid.UUID
		Eventually(func(g Gomega) {
			err := pool.QueryRow(ctx,
				`SELECT id FROM orders WHERE user_id = $1`, userID,
			).Scan(&orderID)
			g.Expect(err).NotTo(HaveOccurred())
		}).WithTimeout(15 * time.Second).WithPolling(200 * time.Millisecond).Should(Succeed())

		ord, err := repo.OrderByID(ctx, orderID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ord.Status).To(Equal(model.StatusPending))
		Expect(ord.TotalCents).To(Equal(int64(1290000 + 629000)))

		By("listening for status changed events")
		events := make(chan statusChangedJSON, 4)
		listenCtx, stopListening := context.WithCancel(ctx)
		defer stopListening()
		go func() {
			_ = listenStatusChanged(listenCtx, kafkaBrokers, events)
		}()

		By("submitting payment proof as the customer")
		customer := model.Actor{UserID: userID, Role: model.RoleCustomer}
		_, err = ordSvc.SubmitPaymentProof(ctx, customer, model.SubmitPaymentProofParams{
			OrderID:  orderID,
			ProofRef: "slips/2026/08/transfer.jpg",
		})
		Expect(err).NotTo(HaveOccurred())

		var got statusChangedJSON
		Eventually(events).WithTimeout(15 * time.Second).Should(Receive(&got))
		Expect(got.OrderID).To(Equal(orderID.String()))
		Expect(got.OldStatus).To(Equal(string(model.StatusPending)))
		Expect(got.NewStatus).To(Equal(string(model.StatusVerifying)))

		By("marking the order PAID then SHIPPED as admin")
		admin := model.Actor{UserID: uuid.New(), Role: model.RoleAdmin}
		_, err = ordSvc.SetStatus(ctx, admin, model.SetStatusParams{
			OrderID: orderID,
			Status:  model.StatusPaid,
		})
		Expect(err).NotTo(HaveOccurred())

		tracking := "TH1234567890"
		carrier := "Kerry Express"
		shipped, err := ordSvc.SetStatus(ctx, admin, model.SetStatusParams{
			OrderID:        orderID,
			Status:         model.StatusShipped,
			TrackingNumber: &tracking,
			Carrier:        &carrier,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(shipped.TrackingNumber).NotTo(BeNil())
		Expect(*shipped.TrackingNumber).To(Equal(tracking))

		By("waiting until both transitions are observed on the topic")
		Eventually(events).WithTimeout(15 * time.Second).Should(Receive(&got))
		Expect(got.NewStatus).To(Equal(string(model.StatusPaid)))
		Eventually(events).WithTimeout(15 * time.Second).Should(Receive(&got))
		Expect(got.NewStatus).To(Equal(string(model.StatusShipped)))
	})
})

type statusChangedJSON struct {
	EventID    string `json:"event_id"`
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id"`
	OldStatus  string `json:"old_status"`
	NewStatus  string `json:"new_status"`
	OccurredAt string `json:"occurred_at"`
}

func runKafka(ctx context.Context) (tc.Container, []string, error) {
	c, err := kafkaTc.Run(ctx,
		kafkaImage,
		kafkaTc.WithClusterID("Mk3OEYBSD34fcwNTJENDM2Qk"),
	)
	if err != nil {
		return nil, []string{}, err
	}

	bootstrap, err := c.Brokers(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, []string{}, err
	}

	return c, bootstrap, nil
}

func mustTerminate(ctx context.Context, c tc.Container) {
	if c != nil {
		_ = c.Terminate(ctx)
	}
}

func createTopics(_ context.Context, brokers []string, topics ...string) error {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V4_0_0_0
	cfg.Producer.Return.Successes = true
	cfg.Admin.Timeout = 10 * time.Second

	admin, err := sarama.NewClusterAdmin(brokers, cfg)
	if err != nil {
		return err
	}
	defer admin.Close()

	for _, t := range topics {
		err := admin.CreateTopic(t, &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		}, false)
		if err != nil && !errors.Is(err, sarama.ErrTopicAlreadyExists) {
			return err
		}
	}
	return nil
}

func sendCheckout(brokers []string, userID uuid.UUID, payload []byte) error {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V4_0_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll

	prod, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return err
	}
	defer prod.Close()

	_, _, err = prod.SendMessage(&sarama.ProducerMessage{
		Topic: topicCheckout,
		Key:   sarama.ByteEncoder(userID[:]),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func listenStatusChanged(ctx context.Context, brokers []string, out chan<- statusChangedJSON) error {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V4_0_0_0
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = true

	consumerGr, err := sarama.NewConsumerGroup(
		brokers,
		"storefront-it-status-listener",
		cfg,
	)
	if err != nil {
		return err
	}
	defer consumerGr.Close()

	c := consumer.NewConsumer(
		consumerGr,
		[]string{
			topicStatusChanged,
		},
		logger.L(),
	)

	return c.Consume(ctx, func(_ context.Context, msg kafka.Message) error {
		var rec statusChangedJSON
		if err := json.Unmarshal(msg.Value, &rec); err != nil {
			return err
		}
		out <- rec
		return nil
	})
}

type stubCatalogClient struct {
	components map[string]*model.Component
}

func newStubCatalogClient() *stubCatalogClient {
	return &stubCatalogClient{
		components: map[string]*model.Component{
			cpuID: {
				ID:            cpuID,
				Name:          "AMD Ryzen 7 7700X",
				Slot:          model.SlotCPU,
				PriceCents:    1290000,
				StockQuantity: 10,
			},
			boardID: {
				ID:            boardID,
				Name:          "ASUS TUF Gaming B650-Plus",
				Slot:          model.SlotMotherboard,
				PriceCents:    629000,
				StockQuantity: 10,
			},
		},
	}
}

func (c *stubCatalogClient) ListComponents(_ context.Context, filter model.ComponentsFilter) ([]*model.Component, error) {
	out := make([]*model.Component, 0, len(filter.IDs))
	for _, id := range filter.IDs {
		if comp, ok := c.components[id]; ok {
			out = append(out, comp)
		}
	}
	return out, nil
}
