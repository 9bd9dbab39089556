package repository

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Companion defines persistence for the user's companion
type Companion interface {
	// GetCompanion returns domain.ErrCompanionNotFound when the user has none
	GetCompanion(ctx context.Context, userID string) (*domain.Companion, error)
	// CreateCompanion creates the user's companion. An existing companion only
	// takes the new name.
	CreateCompanion(ctx context.Context, userID, name string, partnerID *int64) (*domain.Companion, error)
	UpdateCompanion(ctx context.Context, userID string, update domain.CompanionUpdate) (*domain.Companion, error)
}
