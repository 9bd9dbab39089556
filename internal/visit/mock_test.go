package visit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// MockRepository is a testify mock of repository.Visit
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertVisitLog(ctx context.Context, log domain.VisitLog) (*domain.VisitLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitLog), args.Error(1)
}

func (m *MockRepository) GetUserVisitLogs(ctx context.Context, userID string, limit int) ([]domain.VisitLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VisitLog), args.Error(1)
}

// MockQuestEvaluator is a testify mock of QuestEvaluator
type MockQuestEvaluator struct {
	mock.Mock
}

func (m *MockQuestEvaluator) CheckAndCompleteQuests(ctx context.Context, placeID string) ([]domain.QuestCompletionResult, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestCompletionResult), args.Error(1)
}
