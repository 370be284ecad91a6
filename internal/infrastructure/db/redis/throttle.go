package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 5 * time.Minute
)

// SigninThrottle counts failed signin attempts per email in Redis.
// Key format: signin_fail:<email>, expiring after the failure window so a
// quiet period always clears the slate.
type SigninThrottle struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

// NewSigninThrottle creates a throttle wrapping the given Redis client.
// Non-positive limits fall back to the defaults.
func NewSigninThrottle(client *redis.Client, maxFailures int, window time.Duration) *SigninThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &SigninThrottle{client: client, maxFailures: maxFailures, window: window}
}

// Blocked reports whether email has reached the failure limit.
func (t *SigninThrottle) Blocked(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= int64(t.maxFailures), nil
}

// RecordFailure counts one failed attempt and refreshes the window.
func (t *SigninThrottle) RecordFailure(ctx context.Context, email string) error {
	key := t.key(email)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful signin.
func (t *SigninThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *SigninThrottle) key(email string) string {
	return "signin_fail:" + email
}
