package visit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
)

const testUserID = "6f0a3c2e-1111-4a4a-9b9b-000000000001"

var testUser = &domain.User{ID: testUserID}

func validVisit() domain.NewVisitLog {
	lat, lng := 35.2247, 139.0897
	return domain.NewVisitLog{
		TotalMs:   15 * 60 * 1000,
		StartedAt: startAt,
		EndedAt:   startAt.Add(15 * time.Minute),
		PlaceName: "天山湯治郷",
		PlaceID:   "ChIJtenzan",
		Lat:       &lat,
		Lng:       &lng,
	}
}

func savedFrom(in domain.NewVisitLog) *domain.VisitLog {
	return &domain.VisitLog{
		UserID:    testUserID,
		TotalMs:   in.TotalMs,
		StartedAt: in.StartedAt,
		EndedAt:   in.EndedAt,
		PlaceName: in.PlaceName,
		PlaceID:   in.PlaceID,
		Lat:       in.Lat,
		Lng:       in.Lng,
		CreatedAt: in.EndedAt,
	}
}

func TestInsertVisitLog_Success(t *testing.T) {
	ctx := context.Background()
	in := validVisit()

	repo := new(MockRepository)
	repo.On("InsertVisitLog", mock.Anything, mock.MatchedBy(func(l domain.VisitLog) bool {
		return l.UserID == testUserID && l.PlaceID == in.PlaceID && l.TotalMs == in.TotalMs
	})).Return(savedFrom(in), nil)

	completions := []domain.QuestCompletionResult{{QuestID: 1, QuestName: "箱根めぐり"}}
	quests := new(MockQuestEvaluator)
	quests.On("CheckAndCompleteQuests", mock.Anything, in.PlaceID).Return(completions, nil)

	bus := event.NewMemoryBus()
	var logged []event.VisitLoggedPayloadV1
	bus.Subscribe(event.VisitLogged, func(_ context.Context, e event.Event) error {
		logged = append(logged, e.Payload.(event.VisitLoggedPayloadV1))
		return nil
	})

	svc := NewService(repo, auth.StaticIdentity(testUser), quests, bus)
	result, err := svc.InsertVisitLog(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, in.PlaceID, result.Log.PlaceID)
	assert.Equal(t, completions, result.Completions)
	require.Len(t, logged, 1)
	assert.Equal(t, in.PlaceID, logged[0].PlaceID)
	repo.AssertExpectations(t)
	quests.AssertExpectations(t)
}

func TestInsertVisitLog_RequiresAuth(t *testing.T) {
	repo := new(MockRepository)
	quests := new(MockQuestEvaluator)

	svc := NewService(repo, auth.StaticIdentity(nil), quests, nil)
	_, err := svc.InsertVisitLog(context.Background(), validVisit())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	repo.AssertNotCalled(t, "InsertVisitLog", mock.Anything, mock.Anything)
}

func TestInsertVisitLog_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.NewVisitLog)
		field  string
	}{
		{"blank place id", func(v *domain.NewVisitLog) { v.PlaceID = "   " }, "placeid"},
		{"negative duration", func(v *domain.NewVisitLog) { v.TotalMs = -1 }, "totalms"},
		{"ends before start", func(v *domain.NewVisitLog) { v.EndedAt = v.StartedAt.Add(-time.Second) }, "endedat"},
		{"latitude out of range", func(v *domain.NewVisitLog) { lat := 91.0; v.Lat = &lat }, "lat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			quests := new(MockQuestEvaluator)
			in := validVisit()
			tt.mutate(&in)

			svc := NewService(repo, auth.StaticIdentity(testUser), quests, nil)
			_, err := svc.InsertVisitLog(context.Background(), in)

			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)
			repo.AssertNotCalled(t, "InsertVisitLog", mock.Anything, mock.Anything)
		})
	}
}

func TestInsertVisitLog_InsertFailureSkipsQuests(t *testing.T) {
	repo := new(MockRepository)
	repo.On("InsertVisitLog", mock.Anything, mock.Anything).
		Return(nil, errors.Join(domain.ErrDataAccess, errors.New("connection reset")))
	quests := new(MockQuestEvaluator)

	svc := NewService(repo, auth.StaticIdentity(testUser), quests, nil)
	result, err := svc.InsertVisitLog(context.Background(), validVisit())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDataAccess)
	quests.AssertNotCalled(t, "CheckAndCompleteQuests", mock.Anything, mock.Anything)
}

func TestInsertVisitLog_QuestFailureIsSwallowed(t *testing.T) {
	in := validVisit()
	repo := new(MockRepository)
	repo.On("InsertVisitLog", mock.Anything, mock.Anything).Return(savedFrom(in), nil)
	quests := new(MockQuestEvaluator)
	quests.On("CheckAndCompleteQuests", mock.Anything, in.PlaceID).Return(nil, domain.ErrDataAccess)

	svc := NewService(repo, auth.StaticIdentity(testUser), quests, nil)
	result, err := svc.InsertVisitLog(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, in.PlaceID, result.Log.PlaceID)
	assert.Empty(t, result.Completions)
}

func TestRecentVisits(t *testing.T) {
	ctx := context.Background()
	logs := []domain.VisitLog{*savedFrom(validVisit())}

	t.Run("default limit", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserVisitLogs", ctx, testUserID, DefaultRecentLimit).Return(logs, nil)

		got, err := NewService(repo, auth.StaticIdentity(testUser), nil, nil).RecentVisits(ctx, 0)

		require.NoError(t, err)
		assert.Equal(t, logs, got)
	})

	t.Run("backend failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetUserVisitLogs", ctx, testUserID, 5).Return(nil, domain.ErrDataAccess)

		_, err := NewService(repo, auth.StaticIdentity(testUser), nil, nil).RecentVisits(ctx, 5)

		assert.ErrorIs(t, err, domain.ErrDataAccess)
	})
}
