package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/onsenkatsu/internal/config"
	"github.com/osse101/onsenkatsu/internal/database"
)

// connect loads the environment and opens a pool against the configured database
func connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	connStr := cfg.GetDBConnString()
	PrintInfo("Connecting to database: %s", redactPassword(connStr))

	pool, err := database.NewPool(ctx, connStr, cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}

// redactPassword masks the password in a postgres URL for display
func redactPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return connStr
	}
	return u.Redacted()
}
