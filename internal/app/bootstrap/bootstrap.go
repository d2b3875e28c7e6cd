package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	reportingservice "mercato/contexts/insights/reporting-service"
	marketplaceengine "mercato/contexts/trading-core/marketplace-engine"
	eventsadapter "mercato/contexts/trading-core/marketplace-engine/adapters/events"
	postgresadapter "mercato/contexts/trading-core/marketplace-engine/adapters/postgres"
	"mercato/contexts/trading-core/marketplace-engine/application/workers"
	"mercato/internal/platform/config"
	"mercato/internal/platform/db"
	"mercato/internal/platform/httpserver"
	"mercato/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        workers.OutboxRelay
	monitor      eventsadapter.Monitor
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	engine := marketplaceengine.NewModule(marketplaceengine.Dependencies{
		Repository:  repo,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	reporting := reportingservice.NewEngineBackedModule(
		repo,
		postgresadapter.SystemClock{},
		logger,
	)

	server := httpserver.New(engine, reporting, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		monitor:  eventsadapter.NewMonitor(kafka, logger),
		relay: workers.OutboxRelay{
			Outbox:    repo,
			Publisher: eventsadapter.NewPublisher(kafka, logger),
			Clock:     postgresadapter.SystemClock{},
			BatchSize: cfg.RelayBatchSize,
			Logger:    logger,
		},
		relayEnabled: cfg.EnableRoleChangeRelay,
		pollInterval: cfg.RelayInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.relayEnabled {
		w.logger.Info("role change relay disabled",
			"event", "bootstrap_relay_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	if err := w.monitor.Start(ctx); err != nil {
		return err
	}

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)
	err := w.relay.Run(ctx, w.pollInterval)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
