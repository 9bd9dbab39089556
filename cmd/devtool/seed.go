package main

import (
	"context"
	"fmt"

	"github.com/osse101/onsenkatsu/internal/bootstrap"
	"github.com/osse101/onsenkatsu/internal/database/postgres"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Sync partners, accessories and quests from a catalog file (default: built-in)"
}

func (c *SeedCommand) Run(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: seed [catalog.toml]")
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintHeader("Seeding catalog")
	counts, err := bootstrap.SyncCatalog(ctx, postgres.NewCatalogRepository(pool), path)
	if err != nil {
		return err
	}

	PrintSuccess("Partners: %d, accessories: %d, quests: %d, quest onsens: %d",
		counts.Partners, counts.Accessories, counts.Quests, counts.QuestOnsens)
	return nil
}
