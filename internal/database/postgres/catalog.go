package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/metrics"
	"github.com/osse101/onsenkatsu/internal/repository"
)

// CatalogRepository writes seed content
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// CatalogCounts reports how many rows ApplyCatalog wrote per table
type CatalogCounts struct {
	Partners    int
	Accessories int
	Quests      int
	QuestOnsens int
}

// ApplyCatalog upserts every catalog entry by id in one transaction. A seeded
// quest's onsen list replaces whatever was stored for it.
func (r *CatalogRepository) ApplyCatalog(ctx context.Context, c domain.Catalog) (counts CatalogCounts, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return counts, dataErr(opBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	for _, p := range c.Partners {
		if err := upsertNamed(ctx, tx, opUpsertPartner, "partner", p.ID, p.Name); err != nil {
			return counts, err
		}
		counts.Partners++
	}
	for _, a := range c.Accessories {
		if err := upsertNamed(ctx, tx, opUpsertAccessory, "accessary", a.ID, a.Name); err != nil {
			return counts, err
		}
		counts.Accessories++
	}
	for _, q := range c.Quests {
		if err := upsertNamed(ctx, tx, opUpsertQuest, "quest", q.ID, q.Name); err != nil {
			return counts, err
		}
		counts.Quests++

		n, err := replaceQuestOnsens(ctx, tx, q)
		if err != nil {
			return counts, err
		}
		counts.QuestOnsens += n
	}

	for _, table := range []string{"partner", "accessary", "quest"} {
		if err := resetSequence(ctx, tx, table); err != nil {
			return counts, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return counts, dataErr(opCommit, err)
	}
	return counts, nil
}

// upsertNamed writes an (id, name) row. table is always one of our literals.
func upsertNamed(ctx context.Context, q querier, op, table string, id int64, name string) (err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, op, time.Now(), &err)
	defer metrics.TrackInFlight()()

	sql := fmt.Sprintf(`INSERT INTO %s (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`, table)
	if _, err := q.Exec(ctx, sql, id, name); err != nil {
		return dataErr(op, err)
	}
	return nil
}

func replaceQuestOnsens(ctx context.Context, q querier, quest domain.QuestSeed) (n int, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opUpsertQuestOnsen, time.Now(), &err)
	defer metrics.TrackInFlight()()

	if _, err := q.Exec(ctx, `DELETE FROM quest_onsen WHERE quest_id = $1`, quest.ID); err != nil {
		return 0, dataErr(opUpsertQuestOnsen, err)
	}
	for _, o := range quest.Onsens {
		if _, err := q.Exec(ctx, `
			INSERT INTO quest_onsen (quest_id, place_id, lat, lng)
			VALUES ($1, $2, $3, $4)`, quest.ID, o.PlaceID, o.Lat, o.Lng); err != nil {
			return n, dataErr(opUpsertQuestOnsen, err)
		}
		n++
	}
	return n, nil
}

// resetSequence moves the serial past explicitly seeded ids
func resetSequence(ctx context.Context, q querier, table string) error {
	sql := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), GREATEST((SELECT MAX(id) FROM %[1]s), 1))`, table)
	if _, err := q.Exec(ctx, sql); err != nil {
		return dataErr("reset_sequence", err)
	}
	return nil
}
