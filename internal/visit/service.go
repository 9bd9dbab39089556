package visit

import (
	"context"
	"fmt"

	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/logger"
	"github.com/osse101/onsenkatsu/internal/repository"
	"github.com/osse101/onsenkatsu/internal/validation"
)

// Service writes bathing sessions to the visit log
type Service interface {
	// InsertVisitLog persists a session and then evaluates quests for its place.
	// A quest evaluation failure never fails the visit.
	InsertVisitLog(ctx context.Context, in domain.NewVisitLog) (*domain.VisitResult, error)
	// RecentVisits returns the signed-in user's latest visits, newest first
	RecentVisits(ctx context.Context, limit int) ([]domain.VisitLog, error)
}

// QuestEvaluator completes quests satisfied by a visited place
type QuestEvaluator interface {
	CheckAndCompleteQuests(ctx context.Context, placeID string) ([]domain.QuestCompletionResult, error)
}

type service struct {
	repo     repository.Visit
	identity auth.Identity
	quests   QuestEvaluator
	bus      event.Bus
}

// NewService creates the visit service. bus may be nil.
func NewService(repo repository.Visit, identity auth.Identity, quests QuestEvaluator, bus event.Bus) Service {
	return &service{
		repo:     repo,
		identity: identity,
		quests:   quests,
		bus:      bus,
	}
}

func (s *service) InsertVisitLog(ctx context.Context, in domain.NewVisitLog) (*domain.VisitResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := validation.Get().ValidateStruct(in); err != nil {
		summary := validation.Summary(err)
		log.Warn(LogMsgInvalidVisitRejected, "user_id", user.ID, "reason", summary)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, summary)
	}

	row := domain.VisitLog{
		UserID:    user.ID,
		TotalMs:   in.TotalMs,
		StartedAt: in.StartedAt,
		EndedAt:   in.EndedAt,
		PlaceName: in.PlaceName,
		PlaceID:   in.PlaceID,
		Lat:       in.Lat,
		Lng:       in.Lng,
	}

	saved, err := s.repo.InsertVisitLog(ctx, row)
	if err != nil {
		log.Error(LogMsgVisitInsertFailed, "user_id", user.ID, "place_id", in.PlaceID, "error", err)
		return nil, fmt.Errorf("failed to insert visit log: %w", err)
	}

	log.Info(LogMsgVisitLogged,
		"user_id", user.ID,
		"place_id", saved.PlaceID,
		"total_ms", saved.TotalMs)
	s.publish(ctx, event.NewVisitLoggedEvent(*saved))

	result := &domain.VisitResult{Log: *saved}

	completions, err := s.quests.CheckAndCompleteQuests(ctx, saved.PlaceID)
	if err != nil {
		log.Warn(LogMsgQuestEvalFailed, "user_id", user.ID, "place_id", saved.PlaceID, "error", err)
		return result, nil
	}
	result.Completions = completions

	return result, nil
}

func (s *service) RecentVisits(ctx context.Context, limit int) ([]domain.VisitLog, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	logs, err := s.repo.GetUserVisitLogs(ctx, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load visit logs: %w", err)
	}
	return logs, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}
