package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/taskboard/internal/logger"
	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// Error variables
var (
	ErrUserAlreadyExists    = errors.New("username or email already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidSession       = errors.New("session is no longer valid")
	ErrInvalidRecoveryToken = errors.New("invalid or expired recovery token")
	ErrTooManyAttempts      = errors.New("too many failed login attempts")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	IsFirstUser(ctx context.Context) (bool, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.User) (bool, error)
	Update(ctx context.Context, user *models.User) (bool, error)
}

// RecoveryStore persists password recovery requests.
type RecoveryStore interface {
	Create(ctx context.Context, rec *models.PasswordRecovery) (bool, error)
	GetByToken(ctx context.Context, token string) (*models.PasswordRecovery, error)
	MarkUsed(ctx context.Context, rec *models.PasswordRecovery) (bool, error)
	PurgeStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, sessionToken string) (string, error)
}

// LoginLimiter counts failed logins per username.
type LoginLimiter interface {
	GetFailures(ctx context.Context, username string) (int64, error)
	RecordFailure(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}

// RecoveryNotifier delivers recovery tokens. It returns false, nil when
// no delivery channel is configured.
type RecoveryNotifier interface {
	SendRecovery(ctx context.Context, user *models.User, rec *models.PasswordRecovery) (bool, error)
}

// RecoveryRequest is the outcome of a recovery request. Token is only
// set when the notifier could not deliver it and the service was built
// WithExposedRecoveryToken.
type RecoveryRequest struct {
	Delivered bool
	Token     string
}

// AuthService handles registration, sessions and password recovery.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	recoveries  RecoveryStore
	jwt         JWTGenerator
	limiter     LoginLimiter
	notifier    RecoveryNotifier
	exposeToken bool
	maxAttempts int64
	now         func() time.Time
}

type AuthOpt func(*AuthService)

// WithLoginLimiter enables throttling after maxAttempts failures.
func WithLoginLimiter(limiter LoginLimiter, maxAttempts int64) AuthOpt {
	return func(svc *AuthService) {
		svc.limiter = limiter
		svc.maxAttempts = maxAttempts
	}
}

func WithRecoveryNotifier(notifier RecoveryNotifier) AuthOpt {
	return func(svc *AuthService) {
		svc.notifier = notifier
	}
}

// WithExposedRecoveryToken returns undelivered recovery tokens to the
// caller instead of only logging them. Anyone who knows an account's
// email can then reset its password, so keep it off outside local setups.
func WithExposedRecoveryToken(expose bool) AuthOpt {
	return func(svc *AuthService) {
		svc.exposeToken = expose
	}
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	recoveries RecoveryStore,
	jwt JWTGenerator,
	opts ...AuthOpt,
) *AuthService {
	svc := &AuthService{
		reader:     reader,
		writer:     writer,
		recoveries: recoveries,
		jwt:        jwt,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Register creates an account. The first account in an empty store is
// an admin.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	user, err := models.NewUser(username, email, password)
	if err != nil {
		return nil, err
	}

	exists, err := svc.reader.Exists(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if exists {
		logger.Log.Infow("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	first, err := svc.reader.IsFirstUser(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count users", "err", err)
		return nil, err
	}
	if first {
		user.Promote()
	}

	ok, err := svc.writer.Create(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}
	if !ok {
		return nil, ErrUserAlreadyExists
	}

	logger.Log.Infow("user registered", "user_id", user.ID, "username", username, "role", user.Role())
	return user, nil
}

// Login authenticates a user, starts a new session and returns a JWT
// bound to it. Unknown usernames and wrong passwords are reported the same.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if svc.isLocked(ctx, username) {
		logger.Log.Warnw("login locked", "username", username)
		return "", ErrTooManyAttempts
	}

	user, err := svc.reader.Authenticate(ctx, username, password)
	if err != nil {
		logger.Log.Errorw("failed to authenticate", "err", err)
		return "", err
	}
	if user == nil {
		svc.recordFailure(ctx, username)
		logger.Log.Infow("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	session, err := user.GenerateToken()
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", err
	}
	ok, err := svc.writer.Update(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to store session token", "err", err)
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID, session)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	if svc.limiter != nil {
		if err := svc.limiter.Reset(ctx, username); err != nil {
			logger.Log.Warnw("failed to reset login attempts", "username", username, "err", err)
		}
	}
	return token, nil
}

// isLocked fails open: a broken counter never blocks logins.
func (svc *AuthService) isLocked(ctx context.Context, username string) bool {
	if svc.limiter == nil || svc.maxAttempts <= 0 {
		return false
	}
	n, err := svc.limiter.GetFailures(ctx, username)
	if err != nil {
		logger.Log.Warnw("failed to read login attempts", "username", username, "err", err)
		return false
	}
	return n >= svc.maxAttempts
}

func (svc *AuthService) recordFailure(ctx context.Context, username string) {
	if svc.limiter == nil {
		return
	}
	if _, err := svc.limiter.RecordFailure(ctx, username); err != nil {
		logger.Log.Warnw("failed to record login attempt", "username", username, "err", err)
	}
}

// ResolveSession returns the user whose stored session token matches.
func (svc *AuthService) ResolveSession(ctx context.Context, userID uuid.UUID, sessionToken string) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil || !user.HasToken(sessionToken) {
		return nil, ErrInvalidSession
	}
	return user, nil
}

// Logout ends the user's session.
func (svc *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	user, err := svc.getUser(ctx, userID)
	if err != nil {
		return err
	}

	user.ClearToken()
	return svc.save(ctx, user)
}

// ChangePassword replaces the password after checking the current one.
// The session stays valid.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := svc.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidCredentials
	}
	if err := user.ChangePassword(newPassword); err != nil {
		return err
	}
	return svc.save(ctx, user)
}

// RequestRecovery issues a recovery token for the account with email.
// Unknown emails yield ErrUserNotFound and nothing is stored.
func (svc *AuthService) RequestRecovery(ctx context.Context, email string) (*RecoveryRequest, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user by email", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("recovery requested for unknown email", "email", email)
		return nil, ErrUserNotFound
	}

	rec, err := models.NewPasswordRecovery(user.ID, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate recovery token", "err", err)
		return nil, err
	}
	ok, err := svc.recoveries.Create(ctx, rec)
	if err != nil {
		logger.Log.Errorw("failed to save recovery", "err", err)
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	delivered := false
	if svc.notifier != nil {
		delivered, err = svc.notifier.SendRecovery(ctx, user, rec)
		if err != nil {
			logger.Log.Errorw("failed to send recovery token", "user_id", user.ID, "err", err)
			return nil, err
		}
	}
	if delivered {
		return &RecoveryRequest{Delivered: true}, nil
	}

	logger.Log.Infow("recovery token issued", "user_id", user.ID, "recovery_id", rec.ID, "token", rec.Token)
	if !svc.exposeToken {
		return &RecoveryRequest{}, nil
	}
	return &RecoveryRequest{Token: rec.Token}, nil
}

// ResetPassword consumes a valid recovery token and sets a new password.
// Existing sessions end.
func (svc *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	rec, err := svc.recoveries.GetByToken(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to get recovery", "err", err)
		return err
	}
	if rec == nil || !rec.IsValid() {
		return ErrInvalidRecoveryToken
	}

	user, err := svc.reader.GetByID(ctx, rec.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", rec.UserID, "err", err)
		return err
	}
	if user == nil {
		return ErrInvalidRecoveryToken
	}
	if err := user.ChangePassword(newPassword); err != nil {
		return err
	}

	consumed, err := svc.recoveries.MarkUsed(ctx, rec)
	if err != nil {
		logger.Log.Errorw("failed to mark recovery used", "recovery_id", rec.ID, "err", err)
		return err
	}
	if !consumed {
		return ErrInvalidRecoveryToken
	}

	user.ClearToken()
	if err := svc.save(ctx, user); err != nil {
		return err
	}
	logger.Log.Infow("password reset", "user_id", user.ID)
	return nil
}

// PurgeStaleRecoveries deletes recovery requests older than
// models.RecoveryRetention.
func (svc *AuthService) PurgeStaleRecoveries(ctx context.Context) (int64, error) {
	n, err := svc.recoveries.PurgeStale(ctx, svc.now().Add(-models.RecoveryRetention))
	if err != nil {
		logger.Log.Errorw("failed to purge recoveries", "err", err)
		return 0, err
	}
	if n > 0 {
		logger.Log.Infow("stale recoveries purged", "count", n)
	}
	return n, nil
}

func (svc *AuthService) getUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (svc *AuthService) save(ctx context.Context, user *models.User) error {
	ok, err := svc.writer.Update(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", user.ID, "err", err)
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
