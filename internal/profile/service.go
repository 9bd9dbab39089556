package profile

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/osse101/onsenkatsu/internal/auth"
	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/logger"
	"github.com/osse101/onsenkatsu/internal/repository"
)

// MaxNameLength bounds the display name in runes
const MaxNameLength = 50

// Service manages the signed-in user's display profile
type Service interface {
	// Get returns nil, nil when the user has not set a name yet
	Get(ctx context.Context) (*domain.Profile, error)
	UpdateName(ctx context.Context, name string) (*domain.Profile, error)
}

type service struct {
	repo     repository.Profile
	identity auth.Identity
}

// NewService creates the profile service
func NewService(repo repository.Profile, identity auth.Identity) Service {
	return &service{repo: repo, identity: identity}
}

func (s *service) Get(ctx context.Context) (*domain.Profile, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

func (s *service) UpdateName(ctx context.Context, name string) (*domain.Profile, error) {
	user, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", domain.ErrInvalidInput, MaxNameLength)
	}

	p, err := s.repo.UpsertProfileName(ctx, user.ID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile name: %w", err)
	}

	logger.FromContext(ctx).Info("Profile name updated", "user_id", user.ID)
	return p, nil
}
