package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/taskboard/internal/logger"
)

const loginAttemptKeyPrefix = "taskboard:login_attempts:"

// LoginAttemptCacheRepository counts failed logins per username in Redis.
// Counters expire window after the first failure. A nil client disables
// counting: every call succeeds and reports zero attempts.
type LoginAttemptCacheRepository struct {
	client *redis.Client
	window time.Duration
}

// NewLoginAttemptCacheRepository creates a repository whose counters live for window.
func NewLoginAttemptCacheRepository(client *redis.Client, window time.Duration) *LoginAttemptCacheRepository {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginAttemptCacheRepository{
		client: client,
		window: window,
	}
}

// GetFailures returns the number of failed attempts in the current window.
func (r *LoginAttemptCacheRepository) GetFailures(ctx context.Context, username string) (int64, error) {
	if r == nil || r.client == nil {
		return 0, nil
	}
	key := loginAttemptKey(username)

	n, err := r.client.Get(ctx, key).Int64()
	logger.Log.Debugw("login attempts", "key", key, "result", n, "error", err)
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get login attempts: %w", err)
	}
	return n, nil
}

// RecordFailure increments the counter and starts the window on the first failure.
func (r *LoginAttemptCacheRepository) RecordFailure(ctx context.Context, username string) (int64, error) {
	if r == nil || r.client == nil {
		return 0, nil
	}
	key := loginAttemptKey(username)

	n, err := r.client.Incr(ctx, key).Result()
	if err == nil && n == 1 {
		err = r.client.Expire(ctx, key, r.window).Err()
	}

	logger.Log.Debugw("record login failure", "key", key, "result", n, "error", err)
	if err != nil {
		return 0, fmt.Errorf("record login failure: %w", err)
	}
	return n, nil
}

// Reset clears the counter after a successful login.
func (r *LoginAttemptCacheRepository) Reset(ctx context.Context, username string) error {
	if r == nil || r.client == nil {
		return nil
	}
	key := loginAttemptKey(username)

	err := r.client.Del(ctx, key).Err()
	logger.Log.Debugw("reset login attempts", "key", key, "error", err)
	if err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

func loginAttemptKey(username string) string {
	return loginAttemptKeyPrefix + strings.ToLower(username)
}
