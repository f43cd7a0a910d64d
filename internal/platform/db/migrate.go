package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

// MigrationStatus compares the schema version recorded in goose_db_version
// with the embedded migrations.
type MigrationStatus struct {
	Current int64   `json:"current"`
	Latest  int64   `json:"latest"`
	Pending []int64 `json:"pending"`
}

func prepareGoose() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	return goose.SetDialect("postgres")
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := prepareGoose(); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	before, _ := goose.GetDBVersionContext(ctx, db)
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	after, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.Info("database migrations applied",
		"event", "db_migrations_applied",
		"module", "internal/platform/db",
		"layer", "platform",
		"from_version", before,
		"to_version", after,
	)
	return nil
}

// Status reports the current and latest schema versions. A database without
// the goose version table reports version 0.
func Status(ctx context.Context, db *sql.DB) (MigrationStatus, error) {
	if err := prepareGoose(); err != nil {
		return MigrationStatus{}, fmt.Errorf("set goose dialect: %w", err)
	}
	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		current = 0
	}
	return statusFor(current)
}

func statusFor(current int64) (MigrationStatus, error) {
	migrations, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("collect migrations: %w", err)
	}
	status := MigrationStatus{Current: current}
	for _, m := range migrations {
		if m.Version > status.Latest {
			status.Latest = m.Version
		}
		if m.Version > current {
			status.Pending = append(status.Pending, m.Version)
		}
	}
	return status, nil
}
