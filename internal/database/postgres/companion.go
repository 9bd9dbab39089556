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

// CompanionRepository implements repository.Companion over user_partner
type CompanionRepository struct {
	db *pgxpool.Pool
}

// NewCompanionRepository creates a new CompanionRepository
func NewCompanionRepository(db *pgxpool.Pool) *CompanionRepository {
	return &CompanionRepository{db: db}
}

const companionColumns = `id, user_id, partner_id, COALESCE(name, ''), COALESCE(exp, 0), COALESCE(happiness, 0), created_at`

func scanCompanion(row pgx.Row) (*domain.Companion, error) {
	var c domain.Companion
	if err := row.Scan(&c.ID, &c.UserID, &c.PartnerID, &c.Name, &c.Exp, &c.Happiness, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanionRepository) GetCompanion(ctx context.Context, userID string) (_ *domain.Companion, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetCompanion, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	c, err := scanCompanion(r.db.QueryRow(ctx, `SELECT `+companionColumns+` FROM user_partner WHERE user_id = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCompanionNotFound
	}
	if err != nil {
		return nil, dataErr(opGetCompanion, err)
	}
	return c, nil
}

func (r *CompanionRepository) CreateCompanion(ctx context.Context, userID, name string, partnerID *int64) (_ *domain.Companion, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opCreateCompanion, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	// Setting up again renames the existing companion; progress is kept
	c, err := scanCompanion(r.db.QueryRow(ctx, `
		INSERT INTO user_partner (user_id, partner_id, name, exp, happiness)
		VALUES ($1, $2, $3, 0, 0)
		ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING `+companionColumns, uid, partnerID, name))
	if err != nil {
		return nil, dataErr(opCreateCompanion, err)
	}
	return c, nil
}

func (r *CompanionRepository) UpdateCompanion(ctx context.Context, userID string, update domain.CompanionUpdate) (_ *domain.Companion, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opUpdateCompanion, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	c, err := scanCompanion(r.db.QueryRow(ctx, `
		UPDATE user_partner
		SET name = COALESCE($2, name),
		    exp = COALESCE($3, exp),
		    happiness = COALESCE($4, happiness)
		WHERE user_id = $1
		RETURNING `+companionColumns, uid, update.Name, update.Exp, update.Happiness))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCompanionNotFound
	}
	if err != nil {
		return nil, dataErr(opUpdateCompanion, err)
	}
	return c, nil
}
