package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost used for new password hashes.
var HashCost = bcrypt.DefaultCost

// User represents an account. Administrators are users with IsAdmin set.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`                 // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never plaintext
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`     // Elevated privileges
	Token        *string   `json:"-" db:"token"`               // Current session token, nil when logged out
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}

// NewUser validates the input and builds an ordinary user with a fresh id.
func NewUser(username, email, password string) (*User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// NewAdmin is NewUser with administrator privileges.
func NewAdmin(username, email, password string) (*User, error) {
	u, err := NewUser(username, email, password)
	if err != nil {
		return nil, err
	}
	u.IsAdmin = true
	return u, nil
}

// RestoreUser rebuilds a user from persisted fields. Nothing is validated:
// the values were checked when they were written.
func RestoreUser(id uuid.UUID, username, email, passwordHash string, isAdmin bool, token *string, createdAt time.Time) *User {
	return &User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		Token:        token,
		CreatedAt:    createdAt,
	}
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword validates password and replaces the stored hash. The
// session token is kept.
func (u *User) ChangePassword(password string) error {
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// GenerateToken assigns and returns a new random session token.
func (u *User) GenerateToken() (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	u.Token = &token
	return token, nil
}

// ClearToken drops the session token.
func (u *User) ClearToken() {
	u.Token = nil
}

// HasToken reports whether token is the user's current session token.
func (u *User) HasToken(token string) bool {
	return u.Token != nil && token != "" && *u.Token == token
}

// Promote grants administrator privileges.
func (u *User) Promote() { u.IsAdmin = true }

// Demote revokes administrator privileges.
func (u *User) Demote() { u.IsAdmin = false }

// Role is "admin" or "user".
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Role names reported by User.Role.
const (
	RoleAdmin = "admin" // IsAdmin set
	RoleUser  = "user"  // ordinary account
)

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
