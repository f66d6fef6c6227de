// Package validation holds the input format checks shared by the domain
// constructors and the HTTP handlers.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 20
	PasswordMinLength = 6
	// PasswordMaxBytes is the most bcrypt will hash.
	PasswordMaxBytes = 72
	// PasswordRecommendedLength is the length from which strength is rated.
	PasswordRecommendedLength = 8
)

var (
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong    = errors.New("username must be at most 20 characters")
	ErrUsernameCharacters = errors.New("username may only contain letters, digits and underscore")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrTitleEmpty         = errors.New("title is required")
)

var inputErrors = []error{
	ErrUsernameTooShort,
	ErrUsernameTooLong,
	ErrUsernameCharacters,
	ErrEmailInvalid,
	ErrPasswordTooShort,
	ErrPasswordTooLong,
	ErrTitleEmpty,
}

// IsInputError reports whether err is one of the validation errors above.
func IsInputError(err error) bool {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Strength rates a password that already passed ValidatePassword.
type Strength string

const (
	StrengthAcceptable Strength = "acceptable"
	StrengthWeak       Strength = "weak"
	StrengthMedium     Strength = "medium"
	StrengthStrong     Strength = "strong"
)

const passwordSpecials = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// ValidateUsername checks length and the allowed character set.
func ValidateUsername(username string) error {
	n := len([]rune(username))
	switch {
	case n < UsernameMinLength:
		return ErrUsernameTooShort
	case n > UsernameMaxLength:
		return ErrUsernameTooLong
	case !usernamePattern.MatchString(username):
		return ErrUsernameCharacters
	}
	return nil
}

// ValidateEmail checks the address shape only; deliverability is not verified.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword enforces the minimum length in characters and the
// bcrypt limit in bytes.
func ValidatePassword(password string) error {
	switch {
	case len([]rune(password)) < PasswordMinLength:
		return ErrPasswordTooShort
	case len(password) > PasswordMaxBytes:
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateTitle rejects blank task titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleEmpty
	}
	return nil
}

// PasswordStrength counts character classes. Passwords shorter than the
// recommended length are only rated acceptable.
func PasswordStrength(password string) Strength {
	if len([]rune(password)) < PasswordRecommendedLength {
		return StrengthAcceptable
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	score := 0
	for _, ok := range []bool{upper, lower, digit, special} {
		if ok {
			score++
		}
	}

	switch {
	case score >= 3:
		return StrengthStrong
	case score == 2:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}
