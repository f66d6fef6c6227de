package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	HashCost = bcrypt.MinCost
}

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "alice", "alice@x.com", "secret1", nil},
		{"bad username", "a!", "alice@x.com", "secret1", validation.ErrUsernameTooShort},
		{"bad email", "alice", "alice", "secret1", validation.ErrEmailInvalid},
		{"short password", "alice", "alice@x.com", "123", validation.ErrPasswordTooShort},
		{"long password", "alice", "alice@x.com", strings.Repeat("p", 80), validation.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, u.ID)
			assert.Equal(t, tt.username, u.Username)
			assert.Equal(t, tt.email, u.Email)
			assert.False(t, u.IsAdmin)
			assert.Nil(t, u.Token)
			assert.NotEqual(t, tt.password, u.PasswordHash)
			assert.False(t, u.CreatedAt.IsZero())
		})
	}
}

func TestNewAdmin(t *testing.T) {
	u, err := NewAdmin("root_admin", "root@x.com", "secret1")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, RoleAdmin, u.Role())

	u.Demote()
	assert.False(t, u.IsAdmin)
	assert.Equal(t, RoleUser, u.Role())

	u.Promote()
	assert.True(t, u.IsAdmin)
}

func TestUser_Passwords(t *testing.T) {
	u, err := NewUser("alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	assert.True(t, u.VerifyPassword("secret1"))
	assert.False(t, u.VerifyPassword("secret2"))
	assert.False(t, u.VerifyPassword(""))

	token, err := u.GenerateToken()
	require.NoError(t, err)

	require.NoError(t, u.ChangePassword("secret2"))
	assert.True(t, u.VerifyPassword("secret2"))
	assert.False(t, u.VerifyPassword("secret1"))
	assert.True(t, u.HasToken(token), "changing the password keeps the session token")
}

func TestUser_ChangePassword_Rejected(t *testing.T) {
	u, err := NewUser("alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"empty", "", validation.ErrPasswordTooShort},
		{"too short", "x", validation.ErrPasswordTooShort},
		{"over bcrypt limit", strings.Repeat("p", 73), validation.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, u.ChangePassword(tt.password), tt.wantErr)
			assert.True(t, u.VerifyPassword("secret1"))
		})
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestUser_Token(t *testing.T) {
	u := RestoreUser(uuid.New(), "bob", "bob@x.com", "hash", false, nil, fixedTime)
	assert.False(t, u.HasToken(""))

	t1, err := u.GenerateToken()
	require.NoError(t, err)
	assert.Len(t, t1, 64)
	assert.True(t, u.HasToken(t1))

	t2, err := u.GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
	assert.False(t, u.HasToken(t1))

	u.ClearToken()
	assert.Nil(t, u.Token)
	assert.False(t, u.HasToken(t2))
}

func TestRestoreUser(t *testing.T) {
	id := uuid.New()
	token := "tok"
	u := RestoreUser(id, "x", "not-an-email", "hash", true, &token, fixedTime)

	assert.Equal(t, id, u.ID)
	assert.Equal(t, "x", u.Username)
	assert.Equal(t, "not-an-email", u.Email)
	assert.True(t, u.IsAdmin)
	assert.True(t, u.HasToken("tok"))
	assert.Equal(t, fixedTime, u.CreatedAt)
}
