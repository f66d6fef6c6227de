package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/taskboard/internal/models"
)

// RecoveryRepository persists password recovery requests.
type RecoveryRepository struct {
	store
}

func NewRecoveryRepository(db *sqlx.DB, txGetter TxGetter) *RecoveryRepository {
	return &RecoveryRepository{store{db: db, txGetter: txGetter}}
}

// Create returns false when the user does not exist or the token is taken.
func (r *RecoveryRepository) Create(ctx context.Context, rec *models.PasswordRecovery) (bool, error) {
	query := r.rebind(`
		INSERT INTO password_recovery (id, user_id, email, token, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	args := []any{rec.ID, rec.UserID, rec.Email, rec.Token, rec.Used, rec.CreatedAt}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	logQuery(query, []any{rec.ID, rec.UserID, rec.Email}, rowsAffected(res), err)

	if err != nil {
		if isConstraintViolation(err) {
			return false, nil
		}
		return false, storageError("create password recovery", err)
	}
	return true, nil
}

// GetByToken returns nil, nil for unknown tokens. Expired and used
// entries are returned as stored; callers check IsValid.
func (r *RecoveryRepository) GetByToken(ctx context.Context, token string) (*models.PasswordRecovery, error) {
	query := r.rebind(`
		SELECT id, user_id, email, token, used, created_at
		FROM password_recovery
		WHERE token = ?
	`)

	var rec models.PasswordRecovery
	err := sqlx.GetContext(ctx, r.executor(ctx), &rec, query, token)
	logQuery(query, nil, rec.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("get password recovery", err)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

// MarkUsed consumes rec. Only one caller can consume a given entry: the
// second gets false.
func (r *RecoveryRepository) MarkUsed(ctx context.Context, rec *models.PasswordRecovery) (bool, error) {
	query := r.rebind(`UPDATE password_recovery SET used = ? WHERE id = ? AND used = ?`)
	args := []any{true, rec.ID, false}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	n := rowsAffected(res)
	logQuery(query, args, n, err)

	if err != nil {
		return false, storageError("mark password recovery used", err)
	}
	if n == 0 {
		return false, nil
	}
	rec.MarkUsed()
	return true, nil
}

// PurgeStale deletes entries created before cutoff and returns how many
// were removed.
func (r *RecoveryRepository) PurgeStale(ctx context.Context, cutoff time.Time) (int64, error) {
	query := r.rebind(`DELETE FROM password_recovery WHERE created_at < ?`)
	args := []any{cutoff.UTC()}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	n := rowsAffected(res)
	logQuery(query, args, n, err)

	if err != nil {
		return 0, storageError("purge password recovery", err)
	}
	return n, nil
}
