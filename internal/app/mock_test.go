package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/onsenkatsu/internal/companion"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/places"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) CurrentUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuth) SignInWithPassword(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuth) CompleteOAuth(ctx context.Context, code, verifier string) (*domain.User, error) {
	args := m.Called(ctx, code, verifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuth) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockLinker struct {
	mock.Mock
}

func (m *MockLinker) AuthorizeURL(provider, redirectTo, challenge string) string {
	return m.Called(provider, redirectTo, challenge).String(0)
}

type MockProfile struct {
	mock.Mock
}

func (m *MockProfile) Get(ctx context.Context) (*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfile) UpdateName(ctx context.Context, name string) (*domain.Profile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockCompanion struct {
	mock.Mock
	primed []time.Time
}

func (m *MockCompanion) companion(args mock.Arguments) (*domain.Companion, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Companion), args.Error(1)
}

func (m *MockCompanion) Get(ctx context.Context) (*domain.Companion, error) {
	return m.companion(m.Called(ctx))
}

func (m *MockCompanion) Refresh(ctx context.Context) (*domain.Companion, error) {
	return m.companion(m.Called(ctx))
}

func (m *MockCompanion) Create(ctx context.Context, name string) (*domain.Companion, error) {
	return m.companion(m.Called(ctx, name))
}

func (m *MockCompanion) Update(ctx context.Context, update domain.CompanionUpdate) (*domain.Companion, error) {
	return m.companion(m.Called(ctx, update))
}

func (m *MockCompanion) Rename(ctx context.Context, name string) (*domain.Companion, error) {
	return m.companion(m.Called(ctx, name))
}

func (m *MockCompanion) AddExperienceAndHappiness(ctx context.Context, exp, happiness int) (*domain.Companion, error) {
	return m.companion(m.Called(ctx, exp, happiness))
}

func (m *MockCompanion) ApplySession(ctx context.Context, elapsed time.Duration) (*domain.Companion, error) {
	return m.companion(m.Called(ctx, elapsed))
}

func (m *MockCompanion) Prime(snapshot domain.Companion, takenAt time.Time) bool {
	m.primed = append(m.primed, takenAt)
	return true
}

func (m *MockCompanion) CacheStats() companion.CacheStats {
	return companion.CacheStats{}
}

type MockAccessory struct {
	mock.Mock
}

func (m *MockAccessory) Catalog(ctx context.Context) ([]domain.Accessory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accessory), args.Error(1)
}

func (m *MockAccessory) Owned(ctx context.Context) ([]domain.UserAccessory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAccessory), args.Error(1)
}

func (m *MockAccessory) SelectRandomAccessory(ctx context.Context) (*domain.Accessory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accessory), args.Error(1)
}

func (m *MockAccessory) GrantRandomAccessory(ctx context.Context) (*domain.AccessoryGrantResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessoryGrantResult), args.Error(1)
}

func (m *MockAccessory) GrantAccessory(ctx context.Context, accessoryID int64) (*domain.AccessoryGrantResult, error) {
	args := m.Called(ctx, accessoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessoryGrantResult), args.Error(1)
}

func (m *MockAccessory) Equip(ctx context.Context, accessoryID int64) (*domain.UserAccessory, error) {
	args := m.Called(ctx, accessoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccessory), args.Error(1)
}

func (m *MockAccessory) Unequip(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAccessory) Equipped(ctx context.Context) (*domain.UserAccessory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccessory), args.Error(1)
}

type MockQuest struct {
	mock.Mock
}

func (m *MockQuest) ListWithProgress(ctx context.Context) ([]domain.QuestWithProgress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestWithProgress), args.Error(1)
}

func (m *MockQuest) QuestOnsens(ctx context.Context, questID int64) ([]domain.QuestOnsen, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestOnsen), args.Error(1)
}

func (m *MockQuest) SubmitCompletion(ctx context.Context, questID int64) (*domain.QuestSubmission, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestSubmission), args.Error(1)
}

func (m *MockQuest) CheckAndCompleteQuests(ctx context.Context, placeID string) ([]domain.QuestCompletionResult, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestCompletionResult), args.Error(1)
}

type MockVisit struct {
	mock.Mock
}

func (m *MockVisit) InsertVisitLog(ctx context.Context, in domain.NewVisitLog) (*domain.VisitResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitResult), args.Error(1)
}

func (m *MockVisit) RecentVisits(ctx context.Context, limit int) ([]domain.VisitLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VisitLog), args.Error(1)
}

// stubFinder returns a fixed result list
type stubFinder struct {
	places       []domain.Place
	err          error
	max          float64
	nearestCalls int
}

func (f *stubFinder) Nearby(ctx context.Context, origin domain.Point) ([]domain.Place, error) {
	return f.places, f.err
}

func (f *stubFinder) NearestOnsen(ctx context.Context, origin domain.Point) (*places.Nearest, error) {
	f.nearestCalls++
	if f.err != nil {
		return nil, f.err
	}
	return places.NearestOf(origin, f.places, f.max), nil
}

func (f *stubFinder) MaxDistance() float64 {
	return f.max
}

// memoryStateStore keeps state in memory and counts saves
type memoryStateStore struct {
	state *State
	saves int
	err   error
}

func (m *memoryStateStore) Load() (*State, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.state == nil {
		return newState(), nil
	}
	cp := *m.state
	return &cp, nil
}

func (m *memoryStateStore) Save(s *State) error {
	cp := *s
	m.state = &cp
	m.saves++
	return nil
}
