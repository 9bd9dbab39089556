package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/onsenkatsu/internal/domain"
	"github.com/osse101/onsenkatsu/internal/metrics"
	"github.com/osse101/onsenkatsu/internal/repository"
)

// AccessoryRepository implements repository.Accessory
type AccessoryRepository struct {
	db *pgxpool.Pool
}

// NewAccessoryRepository creates a new AccessoryRepository
func NewAccessoryRepository(db *pgxpool.Pool) *AccessoryRepository {
	return &AccessoryRepository{db: db}
}

const userAccessoryColumns = `ua.user_id, ua.accessary_id, ua.equipped, ua.created_at, a.id, COALESCE(a.name, '')`

func (r *AccessoryRepository) GetAllAccessories(ctx context.Context) (out []domain.Accessory, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetAllAccessories, time.Now(), &err)
	defer metrics.TrackInFlight()()

	rows, err := r.db.Query(ctx, `SELECT id, COALESCE(name, '') FROM accessary ORDER BY id`)
	if err != nil {
		return nil, dataErr(opGetAllAccessories, err)
	}
	defer rows.Close()

	out = []domain.Accessory{}
	for rows.Next() {
		var a domain.Accessory
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, dataErr(opGetAllAccessories, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr(opGetAllAccessories, err)
	}
	return out, nil
}

func (r *AccessoryRepository) GetAccessoryByID(ctx context.Context, id int64) (_ *domain.Accessory, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetAccessoryByID, time.Now(), &err)
	defer metrics.TrackInFlight()()

	var a domain.Accessory
	err = r.db.QueryRow(ctx, `SELECT id, COALESCE(name, '') FROM accessary WHERE id = $1`, id).Scan(&a.ID, &a.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataErr(opGetAccessoryByID, err)
	}
	return &a, nil
}

func (r *AccessoryRepository) GetUserAccessories(ctx context.Context, userID string) (out []domain.UserAccessory, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetUserAccessories, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+userAccessoryColumns+`
		FROM user_accessary ua
		JOIN accessary a ON a.id = ua.accessary_id
		WHERE ua.user_id = $1
		ORDER BY ua.created_at DESC, ua.id DESC`, uid)
	if err != nil {
		return nil, dataErr(opGetUserAccessories, err)
	}
	defer rows.Close()

	out = []domain.UserAccessory{}
	for rows.Next() {
		ua, err := scanUserAccessory(rows)
		if err != nil {
			return nil, dataErr(opGetUserAccessories, err)
		}
		out = append(out, *ua)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr(opGetUserAccessories, err)
	}
	return out, nil
}

func (r *AccessoryRepository) GetUserAccessory(ctx context.Context, userID string, accessoryID int64) (_ *domain.UserAccessory, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetUserAccessory, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+userAccessoryColumns+`
		FROM user_accessary ua
		JOIN accessary a ON a.id = ua.accessary_id
		WHERE ua.user_id = $1 AND ua.accessary_id = $2`, uid, accessoryID)
	ua, err := scanUserAccessory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataErr(opGetUserAccessory, err)
	}
	return ua, nil
}

func (r *AccessoryRepository) InsertUserAccessory(ctx context.Context, userID string, accessoryID int64) (err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opInsertUserAccessory, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO user_accessary (user_id, accessary_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, accessary_id) DO NOTHING`, uid, accessoryID)
	if err != nil {
		return dataErr(opInsertUserAccessory, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyOwned
	}
	return nil
}

func (r *AccessoryRepository) GetEquippedAccessory(ctx context.Context, userID string) (_ *domain.UserAccessory, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opGetEquippedAccessory, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+userAccessoryColumns+`
		FROM user_accessary ua
		JOIN accessary a ON a.id = ua.accessary_id
		WHERE ua.user_id = $1 AND ua.equipped
		LIMIT 1`, uid)
	ua, err := scanUserAccessory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dataErr(opGetEquippedAccessory, err)
	}
	return ua, nil
}

func (r *AccessoryRepository) BeginTx(ctx context.Context) (_ repository.AccessoryTx, err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opBeginTx, time.Now(), &err)
	defer metrics.TrackInFlight()()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, dataErr(opBeginTx, err)
	}
	return &accessoryTx{tx: tx}, nil
}

// accessoryTx implements repository.AccessoryTx
type accessoryTx struct {
	tx pgx.Tx
}

func (t *accessoryTx) UnequipAll(ctx context.Context, userID string) (err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opUnequipAll, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	if _, err := t.tx.Exec(ctx, `UPDATE user_accessary SET equipped = FALSE WHERE user_id = $1 AND equipped`, uid); err != nil {
		return dataErr(opUnequipAll, err)
	}
	return nil
}

func (t *accessoryTx) SetEquipped(ctx context.Context, userID string, accessoryID int64) (err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opSetEquipped, time.Now(), &err)
	defer metrics.TrackInFlight()()

	uid, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `
		UPDATE user_accessary SET equipped = TRUE
		WHERE user_id = $1 AND accessary_id = $2`, uid, accessoryID)
	if err != nil {
		return dataErr(opSetEquipped, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotOwned
	}
	return nil
}

func (t *accessoryTx) Commit(ctx context.Context) (err error) {
	defer metrics.ObserveBackend(metrics.ComponentDatabase, opCommit, time.Now(), &err)
	defer metrics.TrackInFlight()()

	if err := t.tx.Commit(ctx); err != nil {
		return dataErr(opCommit, err)
	}
	return nil
}

func (t *accessoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func scanUserAccessory(row pgx.Row) (*domain.UserAccessory, error) {
	var ua domain.UserAccessory
	var a domain.Accessory
	if err := row.Scan(&ua.UserID, &ua.AccessoryID, &ua.Equipped, &ua.CreatedAt, &a.ID, &a.Name); err != nil {
		return nil, err
	}
	ua.Accessory = &a
	return &ua, nil
}
