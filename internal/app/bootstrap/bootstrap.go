package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	slugregistry "beastypage/contexts/sharing/slug-registry"
	sharepostgres "beastypage/contexts/sharing/slug-registry/adapters/postgres"
	voteaggregator "beastypage/contexts/stream-voting/vote-aggregator"
	voteevents "beastypage/contexts/stream-voting/vote-aggregator/adapters/events"
	votepostgres "beastypage/contexts/stream-voting/vote-aggregator/adapters/postgres"
	"beastypage/internal/platform/config"
	"beastypage/internal/platform/db"
	"beastypage/internal/platform/httpserver"
	"beastypage/internal/platform/messaging"
	"beastypage/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	bus      *messaging.Bus
	logger   *slog.Logger
}

func BuildAPI(ctx context.Context, cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("process", "api")

	collectors := metrics.New()
	bus := messaging.NewBus(cfg.StreamBuffer, logger)
	publisher := voteevents.Publisher{Bus: bus, Source: cfg.ServiceName, Logger: logger}

	app := &APIApp{bus: bus, logger: logger}
	opts := httpserver.Options{
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		RequestTimeout:    cfg.RequestTimeout,
	}
	var shares slugregistry.Module
	var votes voteaggregator.Module

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		shares = slugregistry.NewInMemoryModule(collectors, logger)
		votes = voteaggregator.NewInMemoryModule(publisher, collectors, logger)
	case config.StoreDriverPostgres:
		pg, err := db.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		app.postgres = pg
		opts.Ready = pg.Ping

		shares = slugregistry.NewModule(slugregistry.Dependencies{
			Shares:          sharepostgres.NewRepository(pg.DB, logger),
			Clock:           sharepostgres.SystemClock{},
			Metrics:         collectors,
			MaxSlugAttempts: cfg.SlugMaxAttempts,
			Logger:          logger,
		})
		votes = voteaggregator.NewModule(voteaggregator.Dependencies{
			Votes:     votepostgres.NewRepository(pg.DB, logger),
			Publisher: publisher,
			Clock:     votepostgres.SystemClock{},
			Metrics:   collectors,
			Logger:    logger,
		})
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	app.server = httpserver.New(shares, votes, bus, collectors, logger, cfg.Addr(), opts)
	logger.Info("api app built",
		"event", "bootstrap_api_built",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"store_driver", cfg.StoreDriver,
	)
	return app, nil
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.bus.Close()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return <-errCh
}

func (a *APIApp) Handler() http.Handler {
	return a.server.Handler()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

// Migrate applies the embedded schema to the configured postgres database.
func Migrate(ctx context.Context, cfg config.Config, direction db.MigrateDirection, logger *slog.Logger) error {
	if cfg.StoreDriver != config.StoreDriverPostgres {
		return errors.New("migrations require STORE_DRIVER=postgres")
	}
	pg, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pg.Close()
	return pg.Migrate(direction, logger)
}
