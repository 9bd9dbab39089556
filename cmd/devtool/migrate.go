package main

import (
	"context"
	"fmt"

	"github.com/osse101/onsenkatsu/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, version, reset)"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, version, reset")
	}
	subcmd := args[0]

	if subcmd == database.MigrateReset && (len(args) < 2 || args[1] != confirmYes) {
		return fmt.Errorf("reset drops every table; rerun as `migrate reset %s`", confirmYes)
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintHeader("migrate " + subcmd)
	if err := database.Migrate(ctx, pool, subcmd); err != nil {
		return err
	}

	version, err := database.SchemaVersion(ctx, pool)
	if err != nil {
		return err
	}
	PrintSuccess("Schema version: %d", version)
	return nil
}
