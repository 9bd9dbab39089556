package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// parseUserUUID parses a user ID string to uuid.UUID with a consistent error
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid user id: %w", domain.ErrInvalidInput, err)
	}
	return u, nil
}

// dataErr classifies a failed round trip as a data access error
func dataErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrDataAccess, op, err)
}

// deref collapses a nullable display string to ""
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
