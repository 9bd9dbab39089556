package repository

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Profile defines persistence for display profiles
type Profile interface {
	// GetProfile returns nil, nil when no profile row exists yet
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	// UpsertProfileName sets the display name, creating the row if needed
	UpsertProfileName(ctx context.Context, userID, name string) (*domain.Profile, error)
}
