package main

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/database"
)

type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Check that the database answers and report the schema version"
}

func (c *CheckDBCommand) Run(ctx context.Context, args []string) error {
	PrintHeader("Checking database...")

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	PrintSuccess("Database is reachable")

	version, err := database.SchemaVersion(ctx, pool)
	if err != nil {
		PrintWarning("Could not read schema version: %v", err)
		PrintInfo("Run `devtool migrate up` to create the schema")
		return nil
	}
	PrintSuccess("Schema version: %d", version)
	return nil
}
