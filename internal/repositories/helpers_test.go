package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	models.HashCost = bcrypt.MinCost
}

// setupSQLite opens a fresh database file with the schema applied.
func setupSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "taskboard.db")
	db, err := Open(context.Background(), DriverSQLite, SQLiteDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type repos struct {
	userRead   *UserReadRepository
	userWrite  *UserWriteRepository
	taskRead   *TaskReadRepository
	taskWrite  *TaskWriteRepository
	recoveries *RecoveryRepository
	stats      *StatsRepository
}

func newRepos(db *sqlx.DB) repos {
	return repos{
		userRead:   NewUserReadRepository(db, nil),
		userWrite:  NewUserWriteRepository(db, nil),
		taskRead:   NewTaskReadRepository(db, nil),
		taskWrite:  NewTaskWriteRepository(db, nil),
		recoveries: NewRecoveryRepository(db, nil),
		stats:      NewStatsRepository(db, nil),
	}
}

func mustUser(t *testing.T, r repos, username string, admin bool) *models.User {
	t.Helper()

	var (
		u   *models.User
		err error
	)
	if admin {
		u, err = models.NewAdmin(username, username+"@x.com", "secret1")
	} else {
		u, err = models.NewUser(username, username+"@x.com", "secret1")
	}
	require.NoError(t, err)

	ok, err := r.userWrite.Create(context.Background(), u)
	require.NoError(t, err)
	require.True(t, ok)
	return u
}

// mustTask stores a task created at the given offset from a fixed base,
// which keeps newest-first ordering deterministic.
func mustTask(t *testing.T, r repos, title string, owner uuid.UUID, offset time.Duration) *models.Task {
	t.Helper()

	task, err := models.NewTask(title, "", owner)
	require.NoError(t, err)
	task.CreatedAt = baseTime.Add(offset)
	task.UpdatedAt = task.CreatedAt

	ok, err := r.taskWrite.Create(context.Background(), task)
	require.NoError(t, err)
	require.True(t, ok)
	return task
}

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func taskIDs(tasks []models.Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}
