package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/metrics"
)

// ProfileRepository implements repository.Profile
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (_ *domain.Profile, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetProfile, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var p domain.Profile
	err = r.db.QueryRow(ctx, `SELECT id, COALESCE(name, ''), created_at FROM profile WHERE id = $1`, uid).
		Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataErr(opGetProfile, err)
	}
	return &p, nil
}

func (r *ProfileRepository) UpsertProfileName(ctx context.Context, userID, name string) (_ *domain.Profile, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opUpsertProfileName, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var p domain.Profile
	err = r.db.QueryRow(ctx, `
		INSERT INTO profile (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, COALESCE(name, ''), created_at`, uid, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, dataErr(opUpsertProfileName, err)
	}
	return &p, nil
}
