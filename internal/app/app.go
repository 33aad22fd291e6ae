package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/config"
	componentrepo "github.com/MarkCnw/I-Have-Gpu-sub000/internal/repository/component"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/transport/http/health"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/closer"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/logger"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initTables,
		a.initCatalog,
		a.initServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) initTables(ctx context.Context) error {
	if err := a.di.Migrator(ctx).Up(); err != nil {
		logger.Error(ctx, "failed to apply migrations", logger.ErrorF(err))
		return err
	}
	return nil
}

// initCatalog seeds the component catalog on first boot so the picker has
// something to offer.
func (a *app) initCatalog(ctx context.Context) error {
	repo := a.di.ComponentRepository(ctx)

	n, err := repo.Count(ctx)
	if err != nil {
		logger.Error(ctx, "failed to count components", logger.ErrorF(err))
		return err
	}
	if n > 0 {
		return nil
	}

	if err := componentrepo.ComponentsBootstrap(ctx, repo); err != nil {
		logger.Error(ctx, "failed to seed components", logger.ErrorF(err))
		return err
	}
	logger.Info(ctx, "component catalog seeded")

	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		middleware.Recoverer,
		middleware.Logger,
	)

	a.di.RegisterHandlers(ctx)

	r.HandleFunc("/health", health.HealthCheck)

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(ctx,
			"🚀 checkout consumer running",
			logger.String("kafka_broker", config.C().Kafka.Brokers()[0]),
		)
		if err := a.di.CheckoutConsumer(ctx).RunCheckoutConsume(ctx); err != nil {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 storefront server listening",
			logger.String("address", config.C().Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Server stopped")
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}
