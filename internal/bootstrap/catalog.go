package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/onsenkatsu/internal/database/postgres"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/seed"
	"github.com/osse101/onsenkatsu/internal/validation"
)

// CatalogWriter is the storage side of a catalog sync
type CatalogWriter interface {
	ApplyCatalog(ctx context.Context, c domain.Catalog) (postgres.CatalogCounts, error)
}

// SyncCatalog loads the catalog at path, or the embedded default when path is
// empty, validates it, and upserts it.
func SyncCatalog(ctx context.Context, repo CatalogWriter, path string) (postgres.CatalogCounts, error) {
	slog.Info(LogMsgSyncingCatalog, "path", path)
	loader := seed.NewLoader(validation.NewSchemaValidator())

	var (
		catalog *domain.Catalog
		err     error
	)
	if path == "" {
		catalog, err = loader.Load(bytes.NewReader(seed.DefaultCatalog))
	} else {
		catalog, err = loader.LoadFile(path)
	}
	if err != nil {
		return postgres.CatalogCounts{}, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	counts, err := repo.ApplyCatalog(ctx, *catalog)
	if err != nil {
		return counts, fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	slog.Info(LogMsgCatalogSynced,
		"partners", counts.Partners,
		"accessories", counts.Accessories,
		"quests", counts.Quests,
		"quest_onsens", counts.QuestOnsens)
	return counts, nil
}
