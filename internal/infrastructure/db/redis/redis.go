// Package redis provides the shared Redis client and the signin throttle
// built on top of it.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config names the Redis server holding the throttle keys.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect builds a client and fails fast when the server is unreachable,
// so a misconfigured address surfaces at startup rather than on the first
// failed signin. A zero Timeout falls back to pingTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = pingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		ClientName: "finances-api",
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}
