package quest

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/logger"
	"github.com/osse101/onsenkatsu/internal/repository"
)

// Service evaluates and reports quest progress
type Service interface {
	ListWithProgress(ctx context.Context) ([]domain.QuestWithProgress, error)
	QuestOnsens(ctx context.Context, questID int64) ([]domain.QuestOnsen, error)
	// SubmitCompletion records completion directly, without a reward
	SubmitCompletion(ctx context.Context, questID int64) (*domain.QuestSubmission, error)

	// CheckAndCompleteQuests completes every quest the place satisfies for the
	// signed-in user and grants a random accessory per new completion.
	// Per-quest failures are logged and skipped.
	CheckAndCompleteQuests(ctx context.Context, placeID string) ([]domain.QuestCompletionResult, error)
}

// Rewarder grants the reward for a newly completed quest
type Rewarder interface {
	GrantRandomAccessory(ctx context.Context) (*domain.AccessoryGrantResult, error)
}

type service struct {
	repo     repository.Quest
	identity auth.Identity
	rewarder Rewarder
	bus      event.Bus
}

// NewService creates the quest service. bus may be nil.
func NewService(repo repository.Quest, identity auth.Identity, rewarder Rewarder, bus event.Bus) Service {
	return &service{
		repo:     repo,
		identity: identity,
		rewarder: rewarder,
		bus:      bus,
	}
}

func (s *service) ListWithProgress(ctx context.Context) ([]domain.QuestWithProgress, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	quests, err := s.repo.GetQuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load quests: %w", err)
	}
	if len(quests) == 0 {
		return []domain.QuestWithProgress{}, nil
	}

	counts, err := s.repo.CountQuestOnsens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quest onsens: %w", err)
	}

	submissions, err := s.repo.GetUserSubmissions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quest submissions: %w", err)
	}
	completed := make(map[int64]bool, len(submissions))
	for _, sub := range submissions {
		completed[sub.QuestID] = true
	}

	out := make([]domain.QuestWithProgress, 0, len(quests))
	for _, q := range quests {
		onsenCount := counts[q.ID]
		done := completed[q.ID]
		progress := 0
		if done {
			progress = onsenCount
		}
		out = append(out, domain.QuestWithProgress{
			Quest:        q,
			Difficulty:   DifficultyFor(q.ID),
			OnsenCount:   onsenCount,
			UserProgress: progress,
			IsCompleted:  done,
		})
	}
	return out, nil
}

func (s *service) QuestOnsens(ctx context.Context, questID int64) ([]domain.QuestOnsen, error) {
	onsens, err := s.repo.GetQuestOnsens(ctx, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quest onsens: %w", err)
	}
	return onsens, nil
}

func (s *service) SubmitCompletion(ctx context.Context, questID int64) (*domain.QuestSubmission, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	q, err := s.repo.GetQuestByID(ctx, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quest: %w", err)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrQuestNotFound, questID)
	}

	sub, err := s.repo.UpsertSubmission(ctx, user.ID, questID)
	if err != nil {
		return nil, fmt.Errorf("failed to record quest completion: %w", err)
	}
	return sub, nil
}

func (s *service) CheckAndCompleteQuests(ctx context.Context, placeID string) ([]domain.QuestCompletionResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetQuestOnsensByPlaceID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up quests for place: %w", err)
	}

	results := make([]domain.QuestCompletionResult, 0, len(rows))
	evaluated := make(map[int64]bool, len(rows))

	for _, row := range rows {
		if row.QuestID == nil {
			log.Warn(LogMsgOrphanQuestOnsen, "quest_onsen_id", row.ID, "place_id", placeID)
			continue
		}
		questID := *row.QuestID
		if evaluated[questID] {
			continue
		}
		evaluated[questID] = true

		result, ok := s.evaluate(ctx, user, questID, placeID)
		if ok {
			results = append(results, result)
		}
	}

	log.Info(LogMsgQuestsEvaluated,
		"place_id", placeID,
		"matched_rows", len(rows),
		"new_completions", len(domain.NewCompletions(results)))
	return results, nil
}

// evaluate handles one quest; ok is false when the quest was skipped
func (s *service) evaluate(ctx context.Context, user *domain.User, questID int64, placeID string) (domain.QuestCompletionResult, bool) {
	log := logger.FromContext(ctx).With("quest_id", questID, "user_id", user.ID)

	q, err := s.repo.GetQuestByID(ctx, questID)
	if err != nil || q == nil {
		if err == nil {
			err = domain.ErrQuestNotFound
		}
		log.Error(LogMsgQuestLookupFailed, "error", err)
		return domain.QuestCompletionResult{}, false
	}

	result := domain.QuestCompletionResult{QuestID: q.ID, QuestName: q.Name}

	existing, err := s.repo.GetSubmission(ctx, user.ID, questID)
	if err != nil {
		log.Error(LogMsgSubmissionLookup, "error", err)
		return domain.QuestCompletionResult{}, false
	}
	if existing != nil {
		result.WasAlreadyCompleted = true
		return result, true
	}

	if _, err := s.repo.InsertSubmission(ctx, user.ID, questID); err != nil {
		if errors.Is(err, domain.ErrAlreadyCompleted) {
			result.WasAlreadyCompleted = true
			return result, true
		}
		log.Error(LogMsgSubmissionInsert, "error", err)
		return domain.QuestCompletionResult{}, false
	}

	log.Info(LogMsgQuestCompleted, "quest_name", q.Name, "place_id", placeID)
	s.publish(ctx, event.NewQuestCompletedEvent(user.ID, q.ID, q.Name, placeID))

	reward, err := s.rewarder.GrantRandomAccessory(ctx)
	if err != nil {
		log.Error(LogMsgRewardFailed, "error", err)
		result.RewardError = err.Error()
		return result, true
	}
	result.Reward = reward
	return result, true
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}
