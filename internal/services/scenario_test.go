package services_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sbilibin2017/taskboard/internal/jwt"
	"github.com/sbilibin2017/taskboard/internal/models"
	"github.com/sbilibin2017/taskboard/internal/repositories"
	"github.com/sbilibin2017/taskboard/internal/services"
	"github.com/sbilibin2017/taskboard/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type board struct {
	auth       *services.AuthService
	tasks      *services.TaskService
	admin      *services.AdminService
	users      *repositories.UserReadRepository
	taskRead   *repositories.TaskReadRepository
	recoveries *repositories.RecoveryRepository
	jwt        *jwt.JWT
}

func setupBoard(t *testing.T, authOpts ...services.AuthOpt) board {
	t.Helper()

	ctx := context.Background()
	db, err := repositories.Open(ctx, repositories.DriverSQLite, repositories.SQLiteDSN(filepath.Join(t.TempDir(), "board.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRead := repositories.NewUserReadRepository(db, nil)
	userWrite := repositories.NewUserWriteRepository(db, nil)
	taskRead := repositories.NewTaskReadRepository(db, nil)
	taskWrite := repositories.NewTaskWriteRepository(db, nil)
	recoveries := repositories.NewRecoveryRepository(db, nil)
	stats := repositories.NewStatsRepository(db, nil)
	tokens := jwt.New(jwt.WithSecretKey("scenario"))

	return board{
		auth:       services.NewAuthService(userRead, userWrite, recoveries, tokens, authOpts...),
		tasks:      services.NewTaskService(taskRead, taskWrite, nil),
		admin:      services.NewAdminService(userRead, userWrite, taskRead, taskWrite, stats, nil),
		users:      userRead,
		taskRead:   taskRead,
		recoveries: recoveries,
		jwt:        tokens,
	}
}

func TestScenario_AssignAndComplete(t *testing.T) {
	ctx := context.Background()
	b := setupBoard(t)

	alice, err := b.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.True(t, alice.IsAdmin)

	bob, err := b.auth.Register(ctx, "bob", "bob@x.com", "secret2")
	require.NoError(t, err)
	assert.False(t, bob.IsAdmin)

	_, err = b.auth.Register(ctx, "bob", "other@x.com", "secret2")
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)

	task, err := b.admin.AssignTask(ctx, alice, bob.ID, "Write report", "")
	require.NoError(t, err)

	bobTasks, err := b.taskRead.GetByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobTasks, 1)
	assert.Equal(t, models.StatusToDo, bobTasks[0].Status)
	before := bobTasks[0].UpdatedAt

	_, err = b.tasks.UpdateStatus(ctx, bob, task.ID, "Done")
	require.NoError(t, err)

	got, err := b.taskRead.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, got.Status)
	assert.True(t, got.UpdatedAt.After(before))

	stats, err := b.admin.Stats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.AdminUsers)
	assert.Equal(t, 1, stats.DoneTasks)

	require.NoError(t, b.admin.DeleteUser(ctx, alice, bob.ID))
	gone, err := b.taskRead.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, b.admin.DeleteUser(ctx, alice, alice.ID), services.ErrSelfDeletion)
}

func TestScenario_Sessions(t *testing.T) {
	ctx := context.Background()
	b := setupBoard(t)

	alice, err := b.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	token, err := b.auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	claims, err := b.jwt.GetClaims(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)

	user, err := b.auth.ResolveSession(ctx, claims.UserID, claims.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// a second login replaces the first session
	second, err := b.auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	secondClaims, err := b.jwt.GetClaims(ctx, second)
	require.NoError(t, err)

	_, err = b.auth.ResolveSession(ctx, claims.UserID, claims.SessionToken)
	assert.ErrorIs(t, err, services.ErrInvalidSession)

	require.NoError(t, b.auth.Logout(ctx, alice.ID))
	_, err = b.auth.ResolveSession(ctx, secondClaims.UserID, secondClaims.SessionToken)
	assert.ErrorIs(t, err, services.ErrInvalidSession)

	_, err = b.auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = b.auth.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestScenario_Recovery(t *testing.T) {
	ctx := context.Background()
	b := setupBoard(t, services.WithExposedRecoveryToken(true))

	_, err := b.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		res, err := b.auth.RequestRecovery(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, res)

		n, err := b.recoveries.PurgeStale(ctx, farFuture)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("reset once", func(t *testing.T) {
		res, err := b.auth.RequestRecovery(ctx, "alice@x.com")
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)

		require.NoError(t, b.auth.ResetPassword(ctx, res.Token, "newsecret"))

		user, err := b.users.Authenticate(ctx, "alice", "newsecret")
		require.NoError(t, err)
		assert.NotNil(t, user)

		err = b.auth.ResetPassword(ctx, res.Token, "another1")
		assert.ErrorIs(t, err, services.ErrInvalidRecoveryToken)

		rec, err := b.recoveries.GetByToken(ctx, res.Token)
		require.NoError(t, err)
		assert.True(t, rec.Used)
	})
}

func TestScenario_RecoveryTokenNotExposed(t *testing.T) {
	ctx := context.Background()
	b := setupBoard(t)

	_, err := b.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	res, err := b.auth.RequestRecovery(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.False(t, res.Delivered)
	assert.Empty(t, res.Token)

	// the request is still stored for the operator to hand out
	n, err := b.recoveries.PurgeStale(ctx, farFuture)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestScenario_NewPasswordValidated(t *testing.T) {
	ctx := context.Background()
	b := setupBoard(t, services.WithExposedRecoveryToken(true))

	alice, err := b.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	bob, err := b.auth.Register(ctx, "bob", "bob@x.com", "secret2")
	require.NoError(t, err)

	for _, pw := range []string{"", "x", strings.Repeat("x", 73)} {
		assert.True(t, validation.IsInputError(b.auth.ChangePassword(ctx, bob.ID, "secret2", pw)))
		assert.True(t, validation.IsInputError(b.admin.ResetUserPassword(ctx, alice, bob.ID, pw)))
	}

	res, err := b.auth.RequestRecovery(ctx, "bob@x.com")
	require.NoError(t, err)
	err = b.auth.ResetPassword(ctx, res.Token, "")
	assert.ErrorIs(t, err, validation.ErrPasswordTooShort)

	_, err = b.auth.Login(ctx, "bob", "")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = b.auth.Login(ctx, "bob", "secret2")
	require.NoError(t, err)

	// the rejected reset did not consume the token
	rec, err := b.recoveries.GetByToken(ctx, res.Token)
	require.NoError(t, err)
	assert.False(t, rec.Used)
	require.NoError(t, b.auth.ResetPassword(ctx, res.Token, "secret3"))

	_, err = b.auth.Register(ctx, "carol", "carol@x.com", strings.Repeat("p", 80))
	assert.ErrorIs(t, err, validation.ErrPasswordTooLong)
}

var farFuture = time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)
