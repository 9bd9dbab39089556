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

// QuestRepository implements repository.Quest
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

const questOnsenColumns = `id, quest_id, place_id, lat, lng, created_at`

func (r *QuestRepository) GetQuests(ctx context.Context) (out []domain.Quest, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetQuests, time.Now(), &err)
	defer metrics.TrackInFlight()()

	rows, err := r.db.Query(ctx, `SELECT id, COALESCE(name, ''), created_at FROM quest ORDER BY id`)
	if err != nil {
		return nil, dataErr(opGetQuests, err)
	}
	defer rows.Close()

	out = []domain.Quest{}
	for rows.Next() {
		var q domain.Quest
		if err := rows.Scan(&q.ID, &q.Name, &q.CreatedAt); err != nil {
			return nil, dataErr(opGetQuests, err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr(opGetQuests, err)
	}
	return out, nil
}

func (r *QuestRepository) GetQuestByID(ctx context.Context, questID int64) (_ *domain.Quest, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetQuestByID, time.Now(), &err)
	defer metrics.TrackInFlight()()

	var q domain.Quest
	err = r.db.QueryRow(ctx, `SELECT id, COALESCE(name, ''), created_at FROM quest WHERE id = $1`, questID).
		Scan(&q.ID, &q.Name, &q.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataErr(opGetQuestByID, err)
	}
	return &q, nil
}

func (r *QuestRepository) GetQuestOnsensByPlaceID(ctx context.Context, placeID string) (out []domain.QuestOnsen, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetOnsensByPlace, time.Now(), &err)
	defer metrics.TrackInFlight()()

	out, err = r.queryOnsens(ctx, `SELECT `+questOnsenColumns+` FROM quest_onsen WHERE place_id = $1 ORDER BY id`, placeID)
	if err != nil {
		return nil, dataErr(opGetOnsensByPlace, err)
	}
	return out, nil
}

func (r *QuestRepository) GetQuestOnsens(ctx context.Context, questID int64) (out []domain.QuestOnsen, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetQuestOnsensByID, time.Now(), &err)
	defer metrics.TrackInFlight()()

	out, err = r.queryOnsens(ctx, `SELECT `+questOnsenColumns+` FROM quest_onsen WHERE quest_id = $1 ORDER BY id`, questID)
	if err != nil {
		return nil, dataErr(opGetQuestOnsensByID, err)
	}
	return out, nil
}

func (r *QuestRepository) queryOnsens(ctx context.Context, sql string, arg any) ([]domain.QuestOnsen, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.QuestOnsen{}
	for rows.Next() {
		var o domain.QuestOnsen
		if err := rows.Scan(&o.ID, &o.QuestID, &o.PlaceID, &o.Lat, &o.Lng, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *QuestRepository) CountQuestOnsens(ctx context.Context) (out map[int64]int, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opCountQuestOnsens, time.Now(), &err)
	defer metrics.TrackInFlight()()

	rows, err := r.db.Query(ctx, `
		SELECT quest_id, COUNT(*)
		FROM quest_onsen
		WHERE quest_id IS NOT NULL
		GROUP BY quest_id`)
	if err != nil {
		return nil, dataErr(opCountQuestOnsens, err)
	}
	defer rows.Close()

	out = make(map[int64]int)
	for rows.Next() {
		var questID int64
		var count int
		if err := rows.Scan(&questID, &count); err != nil {
			return nil, dataErr(opCountQuestOnsens, err)
		}
		out[questID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr(opCountQuestOnsens, err)
	}
	return out, nil
}

func (r *QuestRepository) GetSubmission(ctx context.Context, userID string, questID int64) (_ *domain.QuestSubmission, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetSubmission, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var s domain.QuestSubmission
	err = r.db.QueryRow(ctx, `
		SELECT user_id, quest_id, created_at
		FROM quest_submission
		WHERE user_id = $1 AND quest_id = $2`, uid, questID).Scan(&s.UserID, &s.QuestID, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataErr(opGetSubmission, err)
	}
	return &s, nil
}

func (r *QuestRepository) GetUserSubmissions(ctx context.Context, userID string) (out []domain.QuestSubmission, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetUserSubmissions, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT user_id, quest_id, created_at
		FROM quest_submission
		WHERE user_id = $1 AND quest_id IS NOT NULL
		ORDER BY created_at`, uid)
	if err != nil {
		return nil, dataErr(opGetUserSubmissions, err)
	}
	defer rows.Close()

	out = []domain.QuestSubmission{}
	for rows.Next() {
		var s domain.QuestSubmission
		if err := rows.Scan(&s.UserID, &s.QuestID, &s.CreatedAt); err != nil {
			return nil, dataErr(opGetUserSubmissions, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr(opGetUserSubmissions, err)
	}
	return out, nil
}

// InsertSubmission relies on the (user_id, quest_id) unique index so two
// concurrent visits cannot both complete the same quest.
func (r *QuestRepository) InsertSubmission(ctx context.Context, userID string, questID int64) (_ *domain.QuestSubmission, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opInsertSubmission, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var s domain.QuestSubmission
	err = r.db.QueryRow(ctx, `
		INSERT INTO quest_submission (user_id, quest_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, quest_id) DO NOTHING
		RETURNING user_id, quest_id, created_at`, uid, questID).Scan(&s.UserID, &s.QuestID, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAlreadyCompleted
	}
	if err != nil {
		return nil, dataErr(opInsertSubmission, err)
	}
	return &s, nil
}

func (r *QuestRepository) UpsertSubmission(ctx context.Context, userID string, questID int64) (_ *domain.QuestSubmission, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opUpsertSubmission, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var s domain.QuestSubmission
	err = r.db.QueryRow(ctx, `
		INSERT INTO quest_submission (user_id, quest_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, quest_id) DO UPDATE SET created_at = NOW()
		RETURNING user_id, quest_id, created_at`, uid, questID).Scan(&s.UserID, &s.QuestID, &s.CreatedAt)
	if err != nil {
		return nil, dataErr(opUpsertSubmission, err)
	}
	return &s, nil
}
