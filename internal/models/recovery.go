package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// RecoveryTokenTTL is how long a recovery token can be used.
	RecoveryTokenTTL = time.Hour
	// RecoveryRetention is the age after which recovery rows are purged.
	RecoveryRetention = 24 * time.Hour
)

// PasswordRecovery is a single-use password reset request.
type PasswordRecovery struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	Token     string    `json:"-" db:"token"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewPasswordRecovery issues a fresh unused token for userID.
func NewPasswordRecovery(userID uuid.UUID, email string) (*PasswordRecovery, error) {
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	return &PasswordRecovery{
		ID:        uuid.New(),
		UserID:    userID,
		Email:     email,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsValid reports whether the token is unused and younger than RecoveryTokenTTL.
func (r *PasswordRecovery) IsValid() bool {
	return r.isValidAt(time.Now())
}

func (r *PasswordRecovery) isValidAt(now time.Time) bool {
	return !r.Used && now.Sub(r.CreatedAt) < RecoveryTokenTTL
}

// MarkUsed consumes the token. Calling it again has no effect.
func (r *PasswordRecovery) MarkUsed() {
	r.Used = true
}

// IsStale reports whether the row is old enough to be purged.
func (r *PasswordRecovery) IsStale(now time.Time) bool {
	return now.Sub(r.CreatedAt) > RecoveryRetention
}
