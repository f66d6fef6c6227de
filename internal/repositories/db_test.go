package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	rawDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(rawDB, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestIsConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, true},
		{"check violation wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23514"}), true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"plain error", errors.New("disk on fire"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isConstraintViolation(tt.err))
		})
	}
}

func TestRepositories_StorageFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	db, mock := setupMock(t)
	userRead := NewUserReadRepository(db, nil)
	userWrite := NewUserWriteRepository(db, nil)
	taskRead := NewTaskReadRepository(db, nil)
	taskWrite := NewTaskWriteRepository(db, nil)
	recoveries := NewRecoveryRepository(db, nil)
	stats := NewStatsRepository(db, nil)

	user := models.RestoreUser(uuid.New(), "alice", "alice@x.com", "hash", false, nil, baseTime)
	task := models.RestoreTask(uuid.New(), "title", "", models.StatusToDo, user.ID, baseTime, baseTime)

	t.Run("GetByUsername", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE username").WillReturnError(boom)
		got, err := userRead.GetByUsername(ctx, "alice")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("IsFirstUser", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").WillReturnError(boom)
		_, err := userRead.IsFirstUser(ctx)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("Authenticate", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM users WHERE username").WillReturnError(boom)
		got, err := userRead.Authenticate(ctx, "alice", "secret1")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("CreateUser", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").WillReturnError(boom)
		ok, err := userWrite.Create(ctx, user)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("CreateUser constraint", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").WillReturnError(&pgconn.PgError{Code: "23505"})
		ok, err := userWrite.Create(ctx, user)
		assert.False(t, ok)
		assert.NoError(t, err)
	})

	t.Run("DeleteWithTasks rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM password_recovery").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM tasks").WillReturnError(boom)
		mock.ExpectRollback()

		ok, err := userWrite.DeleteWithTasks(ctx, user.ID)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("DeleteWithTasks missing user rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM password_recovery").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		ok, err := userWrite.DeleteWithTasks(ctx, user.ID)
		assert.False(t, ok)
		assert.NoError(t, err)
	})

	t.Run("GetByOwner", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM tasks WHERE owner_id").WillReturnError(boom)
		got, err := taskRead.GetByOwner(ctx, user.ID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("UpdateTask", func(t *testing.T) {
		mock.ExpectExec("UPDATE tasks").WillReturnError(boom)
		ok, err := taskWrite.Update(ctx, task)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrStorage)
		assert.True(t, task.UpdatedAt.Equal(baseTime))
	})

	t.Run("DeleteTask", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tasks").WillReturnError(boom)
		ok, err := taskWrite.Delete(ctx, task.ID)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("PurgeStale", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM password_recovery").WillReturnError(boom)
		n, err := recoveries.PurgeStale(ctx, baseTime)
		assert.Zero(t, n)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("Stats", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WillReturnError(boom)
		got, err := stats.Get(ctx)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrStorage)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UsesContextTransaction(t *testing.T) {
	ctx := context.Background()
	db, mock := setupMock(t)

	mock.ExpectBegin()
	tx, err := db.Beginx()
	require.NoError(t, err)

	getter := func(context.Context) *sqlx.Tx { return tx }
	taskWrite := NewTaskWriteRepository(db, getter)
	userWrite := NewUserWriteRepository(db, getter)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = ?")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// no nested BEGIN: the cascade joins the request transaction
	mock.ExpectExec("DELETE FROM password_recovery").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := taskWrite.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = userWrite.DeleteWithTasks(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Failure(t *testing.T) {
	db, mock := setupMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("read-only file system"))

	err := EnsureSchema(context.Background(), db)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
