package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/metrics"
)

// VisitRepository implements repository.Visit
type VisitRepository struct {
	db *pgxpool.Pool
}

// NewVisitRepository creates a new VisitRepository
func NewVisitRepository(db *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) InsertVisitLog(ctx context.Context, log domain.VisitLog) (_ *domain.VisitLog, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opInsertVisitLog, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(log.UserID)
	if err != nil {
		return nil, err
	}

	saved := log
	err = r.db.QueryRow(ctx, `
		INSERT INTO nyuyoku_log (user_id, total_ms, started_at, ended_at, onsen_name, place_id, lat, lng)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
		RETURNING created_at`,
		uid, log.TotalMs, log.StartedAt, log.EndedAt, log.PlaceName, log.PlaceID, log.Lat, log.Lng,
	).Scan(&saved.CreatedAt)
	if err != nil {
		return nil, dataErr(opInsertVisitLog, err)
	}
	return &saved, nil
}

func (r *VisitRepository) GetUserVisitLogs(ctx context.Context, userID string, limit int) (out []domain.VisitLog, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetUserVisitLogs, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT user_id, COALESCE(total_ms, 0), started_at, ended_at, onsen_name, place_id, lat, lng, created_at
		FROM nyuyoku_log
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, uid, limit)
	if err != nil {
		return nil, dataErr(opGetUserVisitLogs, err)
	}
	defer rows.Close()

	out = []domain.VisitLog{}
	for rows.Next() {
		var l domain.VisitLog
		var name *string
		if err := rows.Scan(&l.UserID, &l.TotalMs, &l.StartedAt, &l.EndedAt, &name, &l.PlaceID, &l.Lat, &l.Lng, &l.CreatedAt); err != nil {
			return nil, dataErr(opGetUserVisitLogs, err)
		}
		l.PlaceName = deref(name)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr(opGetUserVisitLogs, err)
	}
	return out, nil
}
