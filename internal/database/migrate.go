package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/onsenkatsu/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate runs a goose command against the embedded migrations
func Migrate(ctx context.Context, pool *pgxpool.Pool, command string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, migrationsDir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, migrationsDir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, migrationsDir)
	case MigrateVersion:
		err = goose.VersionContext(ctx, db, migrationsDir)
	case MigrateReset:
		err = goose.ResetContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf("%s: %q", ErrMsgUnknownMigrateCommand, command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s failed: %w", command, err)
	}

	logger.FromContext(ctx).Info(LogMsgMigrationsApplied, "command", command)
	return nil
}

// SchemaVersion returns the applied migration version
func SchemaVersion(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("pgx"); err != nil {
		return 0, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	v, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}
