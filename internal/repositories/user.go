package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/taskboard/internal/models"
)

const userColumns = `id, username, email, password_hash, is_admin, token, created_at`

// UserReadRepository serves user lookups.
type UserReadRepository struct {
	store
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{store{db: db, txGetter: txGetter}}
}

// GetByID returns nil, nil when no user has the id.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByUsername matches the stored username exactly.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "get user by username", `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// GetByEmail matches the stored email exactly.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetAll returns every user, most recently created first.
func (r *UserReadRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := r.rebind(`SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`)

	users := []models.User{}
	err := sqlx.SelectContext(ctx, r.executor(ctx), &users, query)
	logQuery(query, nil, len(users), err)
	if err != nil {
		return nil, storageError("get all users", err)
	}
	for i := range users {
		normalizeUser(&users[i])
	}
	return users, nil
}

// Exists reports whether username or email is already taken.
func (r *UserReadRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	query := r.rebind(`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`)
	args := []any{username, email}

	var count int
	err := sqlx.GetContext(ctx, r.executor(ctx), &count, query, args...)
	logQuery(query, args, count, err)
	if err != nil {
		return false, storageError("user exists", err)
	}
	return count > 0, nil
}

// IsFirstUser reports whether the store holds no users at all.
func (r *UserReadRepository) IsFirstUser(ctx context.Context) (bool, error) {
	query := r.rebind(`SELECT COUNT(*) FROM users`)

	var count int
	err := sqlx.GetContext(ctx, r.executor(ctx), &count, query)
	logQuery(query, nil, count, err)
	if err != nil {
		return false, storageError("count users", err)
	}
	return count == 0, nil
}

// Authenticate returns the user when the password matches. Unknown
// usernames and wrong passwords both yield nil, nil.
func (r *UserReadRepository) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}
	if !user.VerifyPassword(password) {
		return nil, nil
	}
	return user, nil
}

func (r *UserReadRepository) getOne(ctx context.Context, op, query string, args ...any) (*models.User, error) {
	query = r.rebind(query)

	var user models.User
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)
	logQuery(query, args, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(op, err)
	}
	normalizeUser(&user)
	return &user, nil
}

// UserWriteRepository handles user writes.
type UserWriteRepository struct {
	store
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{store{db: db, txGetter: txGetter}}
}

// Create inserts user. It returns false when the id, username or email
// is already taken.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	query := r.rebind(`
		INSERT INTO users (id, username, email, password_hash, is_admin, token, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	args := []any{user.ID, user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.Token, user.CreatedAt}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	logQuery(query, args[:3], rowsAffected(res), err)

	if err != nil {
		if isConstraintViolation(err) {
			return false, nil
		}
		return false, storageError("create user", err)
	}
	return true, nil
}

// Update overwrites the mutable fields of the user with user.ID. It
// returns false when the user does not exist or the new username or
// email collides with another user.
func (r *UserWriteRepository) Update(ctx context.Context, user *models.User) (bool, error) {
	query := r.rebind(`
		UPDATE users
		SET username = ?, email = ?, password_hash = ?, is_admin = ?, token = ?
		WHERE id = ?
	`)
	args := []any{user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.Token, user.ID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	n := rowsAffected(res)
	logQuery(query, []any{user.Username, user.Email, user.IsAdmin, user.ID}, n, err)

	if err != nil {
		if isConstraintViolation(err) {
			return false, nil
		}
		return false, storageError("update user", err)
	}
	return n > 0, nil
}

// DeleteWithTasks removes the user together with every task and recovery
// request it owns, atomically. It returns false when the user does not exist.
func (r *UserWriteRepository) DeleteWithTasks(ctx context.Context, id uuid.UUID) (bool, error) {
	stmts := []string{
		r.rebind(`DELETE FROM password_recovery WHERE user_id = ?`),
		r.rebind(`DELETE FROM tasks WHERE owner_id = ?`),
		r.rebind(`DELETE FROM users WHERE id = ?`),
	}

	err := r.inTx(ctx, func(ex sqlx.ExtContext) error {
		for i, query := range stmts {
			res, err := ex.ExecContext(ctx, query, id)
			n := rowsAffected(res)
			logQuery(query, []any{id}, n, err)
			if err != nil {
				return err
			}
			if i == len(stmts)-1 && n == 0 {
				return errNoRows
			}
		}
		return nil
	})

	if errors.Is(err, errNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storageError("delete user and tasks", err)
	}
	return true, nil
}

func normalizeUser(u *models.User) {
	u.CreatedAt = u.CreatedAt.UTC()
}
