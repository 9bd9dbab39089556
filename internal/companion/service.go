package companion

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/event"
	"github.com/osse101/onsenkatsu/internal/logger"
	"github.com/osse101/onsenkatsu/internal/repository"
)

// Service reads and changes the signed-in user's companion
type Service interface {
	// Get returns the companion, served from the snapshot cache when fresh
	Get(ctx context.Context) (*domain.Companion, error)
	// Refresh bypasses the cache, e.g. after the backend applied a session increment
	Refresh(ctx context.Context) (*domain.Companion, error)
	Create(ctx context.Context, name string) (*domain.Companion, error)
	Update(ctx context.Context, update domain.CompanionUpdate) (*domain.Companion, error)
	Rename(ctx context.Context, name string) (*domain.Companion, error)
	// AddExperienceAndHappiness adds to both stats; happiness is capped at 100
	AddExperienceAndHappiness(ctx context.Context, exp, happiness int) (*domain.Companion, error)
	// ApplySession applies one bathing session's increment from the client side
	ApplySession(ctx context.Context, elapsed time.Duration) (*domain.Companion, error)
	// Prime seeds the cache with a snapshot persisted by an earlier
	// invocation. It reports whether the snapshot was fresh enough to use.
	Prime(snapshot domain.Companion, takenAt time.Time) bool
	CacheStats() CacheStats
}

// Option configures the service
type Option func(*service)

// WithCache overrides the snapshot cache size and TTL. A zero TTL disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(s *service) {
		if ttl <= 0 {
			s.cache = nil
			return
		}
		s.cache = newCompanionCache(size, ttl)
	}
}

type service struct {
	repo     repository.Companion
	identity auth.Identity
	bus      event.Bus
	cache    *companionCache
}

// NewService creates the companion service. bus may be nil.
func NewService(repo repository.Companion, identity auth.Identity, bus event.Bus, opts ...Option) Service {
	s := &service{
		repo:     repo,
		identity: identity,
		bus:      bus,
		cache:    newCompanionCache(DefaultCacheSize, DefaultCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context) (*domain.Companion, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if c, ok := s.cache.Get(user.ID); ok {
			return c, nil
		}
	}
	return s.load(ctx, user.ID)
}

func (s *service) Refresh(ctx context.Context) (*domain.Companion, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, user.ID)
}

func (s *service) load(ctx context.Context, userID string) (*domain.Companion, error) {
	c, err := s.repo.GetCompanion(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load companion: %w", err)
	}
	s.remember(*c)
	return c, nil
}

func (s *service) Create(ctx context.Context, name string) (*domain.Companion, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultCompanionName
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	c, err := s.repo.CreateCompanion(ctx, user.ID, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create companion: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgCompanionCreated, "user_id", user.ID, "name", c.Name)
	s.remember(*c)
	return c, nil
}

func (s *service) Update(ctx context.Context, update domain.CompanionUpdate) (*domain.Companion, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, user.ID, nil, update, event.SourceManual)
}

// update writes the change. before is the pre-update row for the event and is
// fetched when nil.
func (s *service) update(ctx context.Context, userID string, before *domain.Companion, update domain.CompanionUpdate, source string) (*domain.Companion, error) {
	if update.Name != nil {
		if err := validateName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Happiness != nil {
		h := domain.ClampHappiness(*update.Happiness)
		update.Happiness = &h
	}

	if before == nil {
		before = &domain.Companion{UserID: userID}
		if prev, err := s.repo.GetCompanion(ctx, userID); err == nil {
			before = prev
		}
	}

	// An empty update still round-trips so the caller gets the current row
	after, err := s.repo.UpdateCompanion(ctx, userID, update)
	if err != nil {
		s.forget(userID)
		return nil, fmt.Errorf("failed to update companion: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgCompanionUpdated,
		"user_id", userID,
		"exp", after.Exp,
		"happiness", after.Happiness,
		"level", after.Level(),
		"source", source)

	s.remember(*after)
	s.publish(ctx, event.NewCompanionUpdatedEvent(*before, *after, source))
	return after, nil
}

func (s *service) Rename(ctx context.Context, name string) (*domain.Companion, error) {
	name = strings.TrimSpace(name)
	return s.Update(ctx, domain.CompanionUpdate{Name: &name})
}

func (s *service) AddExperienceAndHappiness(ctx context.Context, exp, happiness int) (*domain.Companion, error) {
	return s.add(ctx, exp, happiness, event.SourceDebug)
}

func (s *service) ApplySession(ctx context.Context, elapsed time.Duration) (*domain.Companion, error) {
	return s.add(ctx, SessionExp(elapsed), domain.HappinessPerSession, event.SourceSession)
}

func (s *service) add(ctx context.Context, exp, happiness int, source string) (*domain.Companion, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetCompanion(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load companion: %w", err)
	}

	newExp := current.Exp + exp
	if newExp < 0 {
		newExp = 0
	}
	newHappiness := domain.ClampHappiness(current.Happiness + happiness)

	return s.update(ctx, user.ID, current, domain.CompanionUpdate{Exp: &newExp, Happiness: &newHappiness}, source)
}

func (s *service) Prime(snapshot domain.Companion, takenAt time.Time) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.Seed(snapshot, takenAt)
}

func (s *service) CacheStats() CacheStats {
	if s.cache == nil {
		return CacheStats{}
	}
	return s.cache.GetStats()
}

func (s *service) remember(c domain.Companion) {
	if s.cache != nil {
		s.cache.Set(c)
	}
}

func (s *service) forget(userID string) {
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be blank", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", domain.ErrInvalidInput, MaxNameLength)
	}
	return nil
}
