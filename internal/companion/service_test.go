package companion

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
)

const testUserID = "6f0a3c2e-1111-4a4a-9b9b-000000000001"

var testUser = &domain.User{ID: testUserID}

// fakeRepository is an in-memory repository.Companion
type fakeRepository struct {
	mu         sync.Mutex
	companions map[string]domain.Companion
	gets       int
	updateErr  error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{companions: make(map[string]domain.Companion)}
}

func (f *fakeRepository) GetCompanion(ctx context.Context, userID string) (*domain.Companion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	c, ok := f.companions[userID]
	if !ok {
		return nil, domain.ErrCompanionNotFound
	}
	return &c, nil
}

func (f *fakeRepository) CreateCompanion(ctx context.Context, userID, name string, partnerID *int64) (*domain.Companion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.companions[userID]; ok {
		c.Name = name
		f.companions[userID] = c
		return &c, nil
	}
	c := domain.Companion{ID: int64(len(f.companions) + 1), UserID: userID, Name: name, PartnerID: partnerID}
	f.companions[userID] = c
	return &c, nil
}

func (f *fakeRepository) UpdateCompanion(ctx context.Context, userID string, update domain.CompanionUpdate) (*domain.Companion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	c, ok := f.companions[userID]
	if !ok {
		return nil, domain.ErrCompanionNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Exp != nil {
		c.Exp = *update.Exp
	}
	if update.Happiness != nil {
		c.Happiness = *update.Happiness
	}
	f.companions[userID] = c
	return &c, nil
}

func seeded(exp, happiness int) *fakeRepository {
	repo := newFakeRepository()
	repo.companions[testUserID] = domain.Companion{ID: 1, UserID: testUserID, Name: "もちもちうさぎ", Exp: exp, Happiness: happiness}
	return repo
}

func TestGet_UsesCache(t *testing.T) {
	repo := seeded(120, 40)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil)
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	second, err := svc.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, int64(1), svc.CacheStats().Hits)
	assert.Equal(t, 2, first.Level())
}

func TestRefresh_BypassesCache(t *testing.T) {
	repo := seeded(0, 0)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)

	// Backend trigger applied a session behind our back
	repo.companions[testUserID] = domain.Companion{ID: 1, UserID: testUserID, Exp: 20, Happiness: 10}

	stale, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stale.Exp)

	fresh, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, fresh.Exp)
}

func TestGet_Errors(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		_, err := NewService(seeded(0, 0), auth.StaticIdentity(nil), nil).Get(context.Background())
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("no companion yet", func(t *testing.T) {
		_, err := NewService(newFakeRepository(), auth.StaticIdentity(testUser), nil).Get(context.Background())
		assert.ErrorIs(t, err, domain.ErrCompanionNotFound)
	})
}

func TestCreate(t *testing.T) {
	svc := NewService(newFakeRepository(), auth.StaticIdentity(testUser), nil)

	c, err := svc.Create(context.Background(), "  ")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCompanionName, c.Name)
	assert.Equal(t, 1, c.Level())
}

func TestCreate_ExistingTakesNewName(t *testing.T) {
	repo := seeded(120, 40)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil)

	c, err := svc.Create(context.Background(), "ゆず")

	require.NoError(t, err)
	assert.Equal(t, "ゆず", c.Name)
	assert.Equal(t, 120, c.Exp)
}

func TestAddExperienceAndHappiness(t *testing.T) {
	repo := seeded(90, 95)
	bus := event.NewMemoryBus()
	var updates []event.CompanionUpdatedPayloadV1
	bus.Subscribe(event.CompanionUpdated, func(_ context.Context, e event.Event) error {
		updates = append(updates, e.Payload.(event.CompanionUpdatedPayloadV1))
		return nil
	})
	svc := NewService(repo, auth.StaticIdentity(testUser), bus)

	c, err := svc.AddExperienceAndHappiness(context.Background(), 20, 10)

	require.NoError(t, err)
	assert.Equal(t, 110, c.Exp)
	assert.Equal(t, domain.MaxHappiness, c.Happiness, "happiness is capped")
	require.Len(t, updates, 1)
	assert.Equal(t, 1, updates[0].OldLevel)
	assert.Equal(t, 2, updates[0].NewLevel)
	assert.Equal(t, event.SourceDebug, updates[0].Source)
}

func TestService_ApplySession(t *testing.T) {
	repo := seeded(0, 50)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil)

	c, err := svc.ApplySession(context.Background(), 15*time.Minute+30*time.Second)

	require.NoError(t, err)
	assert.Equal(t, 30, c.Exp)
	assert.Equal(t, 60, c.Happiness)
}

func TestRename(t *testing.T) {
	ctx := context.Background()

	t.Run("trims and saves", func(t *testing.T) {
		svc := NewService(seeded(0, 0), auth.StaticIdentity(testUser), nil)
		c, err := svc.Rename(ctx, "  ぽかぽか ")
		require.NoError(t, err)
		assert.Equal(t, "ぽかぽか", c.Name)
	})

	t.Run("rejects blank", func(t *testing.T) {
		svc := NewService(seeded(0, 0), auth.StaticIdentity(testUser), nil)
		_, err := svc.Rename(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects long names", func(t *testing.T) {
		svc := NewService(seeded(0, 0), auth.StaticIdentity(testUser), nil)
		long := ""
		for i := 0; i <= MaxNameLength; i++ {
			long += "湯"
		}
		_, err := svc.Rename(ctx, long)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUpdate_FailureInvalidatesCache(t *testing.T) {
	repo := seeded(10, 10)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)

	repo.updateErr = domain.ErrDataAccess
	h := 50
	_, err = svc.Update(ctx, domain.CompanionUpdate{Happiness: &h})
	require.ErrorIs(t, err, domain.ErrDataAccess)

	getsBefore := repo.gets
	_, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, getsBefore+1, repo.gets, "cache entry should have been dropped")
}

func TestWithCache_ZeroTTLDisables(t *testing.T) {
	repo := seeded(0, 0)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil, WithCache(4, 0))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Get(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, repo.gets)
	assert.Equal(t, CacheStats{}, svc.CacheStats())
}

func TestPrime_ServesPersistedSnapshot(t *testing.T) {
	repo := seeded(120, 40)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil)

	snapshot := repo.companions[testUserID]
	require.True(t, svc.Prime(snapshot, time.Now().Add(-time.Second)))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, *got)
	assert.Equal(t, 0, repo.gets)
	assert.Equal(t, int64(1), svc.CacheStats().Hits)
}

func TestPrime_StaleSnapshotLoads(t *testing.T) {
	repo := seeded(120, 40)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil)

	assert.False(t, svc.Prime(repo.companions[testUserID], time.Now().Add(-time.Hour)))

	_, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets)
}

func TestPrime_CacheDisabled(t *testing.T) {
	repo := seeded(0, 0)
	svc := NewService(repo, auth.StaticIdentity(testUser), nil, WithCache(0, 0))

	assert.False(t, svc.Prime(repo.companions[testUserID], time.Now()))
}
