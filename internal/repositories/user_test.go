package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserWriteRepository_Create_RoundTrip(t *testing.T) {
	r := newRepos(setupSQLite(t))
	ctx := context.Background()

	u, err := models.NewUser("alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	token, err := u.GenerateToken()
	require.NoError(t, err)

	ok, err := r.userWrite.Create(ctx, u)
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("ByUsername", func(t *testing.T) {
		got, err := r.userRead.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, u.PasswordHash, got.PasswordHash)
		assert.False(t, got.IsAdmin)
		assert.True(t, got.HasToken(token))
		assert.True(t, u.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("ByEmail", func(t *testing.T) {
		got, err := r.userRead.GetByEmail(ctx, "alice@x.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("ByID", func(t *testing.T) {
		got, err := r.userRead.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		got, err := r.userRead.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, got)

		got, err = r.userRead.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		got, err := r.userRead.GetByUsername(ctx, "Alice")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestUserWriteRepository_Create_Duplicates(t *testing.T) {
	r := newRepos(setupSQLite(t))
	ctx := context.Background()
	mustUser(t, r, "alice", false)

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"duplicate username", "alice", "other@x.com"},
		{"duplicate email", "other", "alice@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := models.NewUser(tt.username, tt.email, "secret1")
			require.NoError(t, err)

			ok, err := r.userWrite.Create(ctx, u)
			assert.NoError(t, err)
			assert.False(t, ok)

			users, err := r.userRead.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, users, 1)
			assert.Equal(t, "alice", users[0].Username)
		})
	}
}

func TestUserReadRepository_IsFirstUser(t *testing.T) {
	r := newRepos(setupSQLite(t))
	ctx := context.Background()

	first, err := r.userRead.IsFirstUser(ctx)
	require.NoError(t, err)
	assert.True(t, first)

	mustUser(t, r, "alice", true)

	first, err = r.userRead.IsFirstUser(ctx)
	require.NoError(t, err)
	assert.False(t, first)
}

func TestUserReadRepository_Exists(t *testing.T) {
	r := newRepos(setupSQLite(t))
	ctx := context.Background()
	mustUser(t, r, "alice", false)

	tests := []struct {
		name     string
		username string
		email    string
		want     bool
	}{
		{"username matches", "alice", "new@x.com", true},
		{"email matches", "new", "alice@x.com", true},
		{"both match", "alice", "alice@x.com", true},
		{"neither", "bob", "bob@x.com", false},
		{"case differs", "ALICE", "ALICE@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.userRead.Exists(ctx, tt.username, tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserReadRepository_Authenticate(t *testing.T) {
	r := newRepos(setupSQLite(t))
	ctx := context.Background()
	alice := mustUser(t, r, "alice", false)

	got, err := r.userRead.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	wrongPassword, err := r.userRead.Authenticate(ctx, "alice", "wrong")
	assert.NoError(t, err)
	assert.Nil(t, wrongPassword)

	unknownUser, err := r.userRead.Authenticate(ctx, "mallory", "secret1")
	assert.NoError(t, err)
	assert.Nil(t, unknownUser)

	assert.Equal(t, wrongPassword, unknownUser)
}

func TestUserReadRepository_GetAll_NewestFirst(t *testing.T) {
	r := newRepos(setupSQLite(t))
	ctx := context.Background()

	for i, name := range []string{"old", "middle", "newest"} {
		u, err := models.NewUser(name+"_user", name+"@x.com", "secret1")
		require.NoError(t, err)
		u.CreatedAt = baseTime.Add(time.Duration(i) * time.Minute)
		ok, err := r.userWrite.Create(ctx, u)
		require.NoError(t, err)
		require.True(t, ok)
	}

	users, err := r.userRead.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "newest_user", users[0].Username)
	assert.Equal(t, "middle_user", users[1].Username)
	assert.Equal(t, "old_user", users[2].Username)
}

func TestUserWriteRepository_Update(t *testing.T) {
	r := newRepos(setupSQLite(t))
	ctx := context.Background()
	alice := mustUser(t, r, "alice", false)
	mustUser(t, r, "bob", false)

	t.Run("mutable fields", func(t *testing.T) {
		alice.Promote()
		require.NoError(t, alice.ChangePassword("newsecret"))
		_, err := alice.GenerateToken()
		require.NoError(t, err)

		ok, err := r.userWrite.Update(ctx, alice)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := r.userRead.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.True(t, got.IsAdmin)
		assert.True(t, got.VerifyPassword("newsecret"))
		assert.Equal(t, *alice.Token, *got.Token)
		assert.True(t, alice.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("clear token", func(t *testing.T) {
		alice.ClearToken()
		ok, err := r.userWrite.Update(ctx, alice)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := r.userRead.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Token)
	})

	t.Run("username collision", func(t *testing.T) {
		clone := *alice
		clone.Username = "bob"
		ok, err := r.userWrite.Update(ctx, &clone)
		assert.NoError(t, err)
		assert.False(t, ok)

		got, err := r.userRead.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("unknown id", func(t *testing.T) {
		ghost := *alice
		ghost.ID = uuid.New()
		ghost.Username = "ghost"
		ghost.Email = "ghost@x.com"
		ok, err := r.userWrite.Update(ctx, &ghost)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUserWriteRepository_DeleteWithTasks(t *testing.T) {
	r := newRepos(setupSQLite(t))
	ctx := context.Background()

	a := mustUser(t, r, "user_a", false)
	b := mustUser(t, r, "user_b", false)
	mustTask(t, r, "task 1", a.ID, 0)
	mustTask(t, r, "task 2", a.ID, time.Minute)
	t3 := mustTask(t, r, "task 3", b.ID, 2*time.Minute)

	rec, err := models.NewPasswordRecovery(a.ID, a.Email)
	require.NoError(t, err)
	ok, err := r.recoveries.Create(ctx, rec)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.userWrite.DeleteWithTasks(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, err := r.userRead.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	aTasks, err := r.taskRead.GetByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, aTasks)

	all, err := r.taskRead.GetAllWithOwners(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, t3.ID, all[0].ID)
	assert.Equal(t, "user_b", all[0].OwnerUsername)

	users, err := r.userRead.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, b.ID, users[0].ID)

	gotRec, err := r.recoveries.GetByToken(ctx, rec.Token)
	require.NoError(t, err)
	assert.Nil(t, gotRec)

	t.Run("unknown id", func(t *testing.T) {
		ok, err := r.userWrite.DeleteWithTasks(ctx, uuid.New())
		assert.NoError(t, err)
		assert.False(t, ok)

		bTasks, err := r.taskRead.GetByOwner(ctx, b.ID)
		require.NoError(t, err)
		assert.Len(t, bTasks, 1)
	})
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "taskboard.db")

	db, err := Open(ctx, DriverSQLite, SQLiteDSN(path))
	require.NoError(t, err)
	r := newRepos(db)
	alice := mustUser(t, r, "alice", true)
	mustTask(t, r, "keep me", alice.ID, 0)
	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, db.Close())

	db, err = Open(ctx, DriverSQLite, SQLiteDSN(path))
	require.NoError(t, err)
	defer db.Close()
	r = newRepos(db)

	got, err := r.userRead.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsAdmin)

	tasks, err := r.taskRead.GetByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	db, err := Open(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
	assert.Nil(t, db)
}
