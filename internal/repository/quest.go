package repository

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Quest defines persistence for quests, their onsens and submissions
type Quest interface {
	GetQuests(ctx context.Context) ([]domain.Quest, error)
	// GetQuestByID returns nil, nil when the quest does not exist
	GetQuestByID(ctx context.Context, questID int64) (*domain.Quest, error)

	// GetQuestOnsensByPlaceID returns every quest_onsen row pinned to placeID in id order
	GetQuestOnsensByPlaceID(ctx context.Context, placeID string) ([]domain.QuestOnsen, error)
	GetQuestOnsens(ctx context.Context, questID int64) ([]domain.QuestOnsen, error)
	// CountQuestOnsens returns quest id -> number of onsens
	CountQuestOnsens(ctx context.Context) (map[int64]int, error)

	// GetSubmission returns nil, nil when the user has not completed the quest
	GetSubmission(ctx context.Context, userID string, questID int64) (*domain.QuestSubmission, error)
	GetUserSubmissions(ctx context.Context, userID string) ([]domain.QuestSubmission, error)
	// InsertSubmission inserts only if absent and returns domain.ErrAlreadyCompleted otherwise
	InsertSubmission(ctx context.Context, userID string, questID int64) (*domain.QuestSubmission, error)
	// UpsertSubmission records completion, refreshing created_at if it already existed
	UpsertSubmission(ctx context.Context, userID string, questID int64) (*domain.QuestSubmission, error)
}
