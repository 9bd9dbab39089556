package repository

import (
	"context"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Visit defines persistence for the append-only visit log
type Visit interface {
	InsertVisitLog(ctx context.Context, log domain.VisitLog) (*domain.VisitLog, error)
	// GetUserVisitLogs returns the most recent logs first
	GetUserVisitLogs(ctx context.Context, userID string, limit int) ([]domain.VisitLog, error)
}
