package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	erpservice "erpinterno/contexts/erp/erp-service"
	"erpinterno/contexts/erp/erp-service/adapters/memory"
	postgresadapter "erpinterno/contexts/erp/erp-service/adapters/postgres"
	"erpinterno/internal/platform/config"
	"erpinterno/internal/platform/db"
	"erpinterno/internal/platform/httpserver"
	"erpinterno/internal/shared/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

// NewLogger builds the process logger from configuration.
func NewLogger(cfg config.Config, process string) *slog.Logger {
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	}).With("service", cfg.ServiceName, "process", process)
}

// BuildAPI wires the ERP module over postgres, or over the in-memory store
// when no DSN is configured outside production.
func BuildAPI(ctx context.Context, cfg config.Config) (*APIApp, error) {
	logger := NewLogger(cfg, "api")
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	opts := httpserver.Options{
		Logger:         logger,
		Addr:           normalizeAddr(cfg.HTTPPort),
		InternalKey:    cfg.InternalKey,
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.Production(),
		Environment:    cfg.Environment,
		Version:        cfg.ServiceVersion,
		Registry:       registry,
	}
	if strings.TrimSpace(cfg.InternalKey) == "" {
		logger.Warn("internal api key is empty; every api request will be rejected",
			"event", "bootstrap_internal_key_missing",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		if cfg.Production() {
			return nil, errors.New("POSTGRES_DSN is required")
		}
		logger.Warn("POSTGRES_DSN not set; serving from the in-memory store",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		module := erpservice.NewInMemoryModule(memory.Seed{}, logger)
		return &APIApp{
			server: httpserver.New(module, opts),
			logger: logger,
		}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		sqlDB, err := pg.SQL()
		if err == nil {
			err = db.Migrate(ctx, sqlDB, logger)
		}
		if err != nil {
			_ = pg.Close()
			return nil, err
		}
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	module := erpservice.NewModule(erpservice.Dependencies{
		Companies:   repo,
		Clients:     repo,
		Projects:    repo,
		Documents:   repo,
		Budgets:     repo,
		Statuses:    repo,
		Categories:  repo,
		Dashboard:   repo,
		Relations:   repo,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      logger,
	})

	opts.Database = pg
	return &APIApp{
		server:   httpserver.New(module, opts),
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"storage", a.storage(),
		)
	}
	return a.server.Start(ctx)
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (a *APIApp) storage() string {
	if a.postgres != nil {
		return "postgres"
	}
	return "memory"
}

// RunMigrations applies pending migrations and returns the resulting status.
func RunMigrations(ctx context.Context, cfg config.Config) (db.MigrationStatus, error) {
	logger := NewLogger(cfg, "migrate")
	return withDatabase(cfg, func(pg *db.Postgres) (db.MigrationStatus, error) {
		sqlDB, err := pg.SQL()
		if err != nil {
			return db.MigrationStatus{}, err
		}
		if err := db.Migrate(ctx, sqlDB, logger); err != nil {
			return db.MigrationStatus{}, err
		}
		return db.Status(ctx, sqlDB)
	})
}

func MigrationStatus(ctx context.Context, cfg config.Config) (db.MigrationStatus, error) {
	return withDatabase(cfg, func(pg *db.Postgres) (db.MigrationStatus, error) {
		sqlDB, err := pg.SQL()
		if err != nil {
			return db.MigrationStatus{}, err
		}
		return db.Status(ctx, sqlDB)
	})
}

func withDatabase(cfg config.Config, fn func(*db.Postgres) (db.MigrationStatus, error)) (db.MigrationStatus, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return db.MigrationStatus{}, errors.New("POSTGRES_DSN is required")
	}
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return db.MigrationStatus{}, err
	}
	defer pg.Close()
	return fn(pg)
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
