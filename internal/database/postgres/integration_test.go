package postgres

import (
	"context"
	"flag"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/onsenkatsu/internal/database"
	"github.com/osse101/onsenkatsu/internal/database/dbtest"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/metrics"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		ctx := context.Background()
		var connStr string
		connStr, terminate = dbtest.StartPostgres(ctx)
		if connStr != "" {
			pool, err := database.NewPool(ctx, connStr, 8, time.Minute, 5*time.Minute)
			if err == nil && database.Migrate(ctx, pool, database.MigrateUp) == nil {
				testPool = pool
			}
		}
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func requirePool(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	return NewStore(testPool)
}

func f64(v float64) *float64 { return &v }

var seedCatalog = domain.Catalog{
	Partners: []domain.Partner{{ID: 1, Name: "うさぎ"}},
	Accessories: []domain.Accessory{
		{ID: 1, Name: "手ぬぐい"},
		{ID: 2, Name: "麦わら帽子"},
		{ID: 3, Name: "桶"},
	},
	Quests: []domain.QuestSeed{
		{ID: 1, Name: "箱根めぐり", Onsens: []domain.QuestOnsenSeed{
			{PlaceID: "place-hakone-1", Lat: f64(35.2323), Lng: f64(139.1069)},
			{PlaceID: "place-shared"},
		}},
		{ID: 2, Name: "湯けむり", Onsens: []domain.QuestOnsenSeed{{PlaceID: "place-shared"}}},
	},
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	_, err := s.Catalog.ApplyCatalog(context.Background(), seedCatalog)
	require.NoError(t, err)
}

func TestCatalog_ApplyIsIdempotent(t *testing.T) {
	s := requirePool(t)
	ctx := context.Background()

	counts, err := s.Catalog.ApplyCatalog(ctx, seedCatalog)
	require.NoError(t, err)
	assert.Equal(t, CatalogCounts{Partners: 1, Accessories: 3, Quests: 2, QuestOnsens: 3}, counts)

	_, err = s.Catalog.ApplyCatalog(ctx, seedCatalog)
	require.NoError(t, err)

	onsens, err := s.Quests.GetQuestOnsens(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, onsens, 2, "reseeding replaces, not duplicates")
}

func TestAccessoryRepository(t *testing.T) {
	s := requirePool(t)
	seed(t, s)
	ctx := context.Background()
	user := uuid.NewString()

	catalog, err := s.Accessories.GetAllAccessories(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(catalog), 3)
	assert.Equal(t, int64(1), catalog[0].ID)

	missing, err := s.Accessories.GetAccessoryByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.Accessories.InsertUserAccessory(ctx, user, 1))
	assert.ErrorIs(t, s.Accessories.InsertUserAccessory(ctx, user, 1), domain.ErrAlreadyOwned)
	require.NoError(t, s.Accessories.InsertUserAccessory(ctx, user, 2))

	owned, err := s.Accessories.GetUserAccessories(ctx, user)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "麦わら帽子", owned[0].Accessory.Name, "newest first")

	none, err := s.Accessories.GetUserAccessory(ctx, user, 3)
	require.NoError(t, err)
	assert.Nil(t, none)

	equipped, err := s.Accessories.GetEquippedAccessory(ctx, user)
	require.NoError(t, err)
	assert.Nil(t, equipped)

	equip := func(id int64) error {
		tx, err := s.Accessories.BeginTx(ctx)
		require.NoError(t, err)
		if err := tx.UnequipAll(ctx, user); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if err := tx.SetEquipped(ctx, user, id); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	}

	require.NoError(t, equip(1))
	require.NoError(t, equip(2))
	assert.ErrorIs(t, equip(3), domain.ErrNotOwned)

	equipped, err = s.Accessories.GetEquippedAccessory(ctx, user)
	require.NoError(t, err)
	require.NotNil(t, equipped)
	assert.Equal(t, int64(2), equipped.AccessoryID)

	_, err = s.Accessories.GetUserAccessories(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuestRepository(t *testing.T) {
	s := requirePool(t)
	seed(t, s)
	ctx := context.Background()
	user := uuid.NewString()

	rows, err := s.Quests.GetQuestOnsensByPlaceID(ctx, "place-shared")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].QuestID)

	counts, err := s.Quests.CountQuestOnsens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[1])
	assert.Equal(t, 1, counts[2])

	q, err := s.Quests.GetQuestByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "箱根めぐり", q.Name)

	sub, err := s.Quests.GetSubmission(ctx, user, 1)
	require.NoError(t, err)
	assert.Nil(t, sub)

	first, err := s.Quests.InsertSubmission(ctx, user, 1)
	require.NoError(t, err)
	assert.Equal(t, user, first.UserID)

	_, err = s.Quests.InsertSubmission(ctx, user, 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)

	again, err := s.Quests.UpsertSubmission(ctx, user, 1)
	require.NoError(t, err)
	assert.False(t, again.CreatedAt.Before(first.CreatedAt))

	subs, err := s.Quests.GetUserSubmissions(ctx, user)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestQuestRepository_ConcurrentInsertSingleWinner(t *testing.T) {
	s := requirePool(t)
	seed(t, s)
	ctx := context.Background()
	user := uuid.NewString()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, dupes := 0, 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Quests.InsertSubmission(ctx, user, 2)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, domain.ErrAlreadyCompleted):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 7, dupes)
}

func TestVisitRepository_TriggerFeedsCompanion(t *testing.T) {
	s := requirePool(t)
	seed(t, s)
	ctx := context.Background()
	user := uuid.NewString()

	partner := int64(1)
	c, err := s.Companions.CreateCompanion(ctx, user, "もちもちうさぎ", &partner)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Exp)

	started := time.Now().Add(-16 * time.Minute).UTC().Truncate(time.Millisecond)
	log, err := s.Visits.InsertVisitLog(ctx, domain.VisitLog{
		UserID:    user,
		TotalMs:   int64(15*time.Minute/time.Millisecond) + 59_000,
		StartedAt: started,
		EndedAt:   started.Add(16 * time.Minute),
		PlaceName: "天山",
		PlaceID:   "place-hakone-1",
		Lat:       f64(35.2323),
		Lng:       f64(139.1069),
	})
	require.NoError(t, err)
	assert.False(t, log.CreatedAt.IsZero())

	after, err := s.Companions.GetCompanion(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 30, after.Exp, "15 whole minutes at 2 exp each")
	assert.Equal(t, 10, after.Happiness)

	logs, err := s.Visits.GetUserVisitLogs(ctx, user, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "天山", logs[0].PlaceName)
	require.NotNil(t, logs[0].Lat)
}

func TestCompanionRepository(t *testing.T) {
	s := requirePool(t)
	ctx := context.Background()
	user := uuid.NewString()

	_, err := s.Companions.GetCompanion(ctx, user)
	assert.ErrorIs(t, err, domain.ErrCompanionNotFound)

	inFlight := testutil.ToFloat64(metrics.BackendInFlight)
	created, err := s.Companions.CreateCompanion(ctx, user, "ぽち", nil)
	require.NoError(t, err)
	assert.Equal(t, inFlight, testutil.ToFloat64(metrics.BackendInFlight))

	exp, name := 250, "たま"
	updated, err := s.Companions.UpdateCompanion(ctx, user, domain.CompanionUpdate{Exp: &exp, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.Exp)
	assert.Equal(t, "たま", updated.Name)
	assert.Equal(t, 0, updated.Happiness)
	assert.Equal(t, 2, updated.Level())

	renamed, err := s.Companions.CreateCompanion(ctx, user, "みけ", nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, renamed.ID)
	assert.Equal(t, "みけ", renamed.Name)
	assert.Equal(t, 250, renamed.Exp, "setting up again keeps progress")

	_, err = s.Companions.UpdateCompanion(ctx, uuid.NewString(), domain.CompanionUpdate{Exp: &exp})
	assert.ErrorIs(t, err, domain.ErrCompanionNotFound)
}

func TestProfileRepository(t *testing.T) {
	s := requirePool(t)
	ctx := context.Background()
	user := uuid.NewString()

	p, err := s.Profiles.GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = s.Profiles.UpsertProfileName(ctx, user, "ゆう")
	require.NoError(t, err)
	p, err = s.Profiles.UpsertProfileName(ctx, user, "ゆうこ")
	require.NoError(t, err)
	assert.Equal(t, "ゆうこ", p.Name)

	got, err := s.Profiles.GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user, got.ID)
}
