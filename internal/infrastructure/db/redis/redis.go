// Package redis wires the Redis client this service uses for the
// forgot-password cooldown store. Nothing else in the API touches Redis, so
// the connection is tuned for that one workload: a single SETNX per reset
// request, a small pool, and a fail-fast ping at boot.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPingTimeout = 5 * time.Second
	defaultPoolSize    = 4
)

// Config carries the connection settings exposed through the environment.
type Config struct {
	Addr     string
	Password string
	DB       int
	// PoolSize bounds concurrent connections. The cooldown store issues one
	// command per forgot-password request, so the default stays small.
	PoolSize int
	// PingTimeout bounds the startup connectivity check.
	PingTimeout time.Duration
}

func (c Config) options() *redis.Options {
	pool := c.PoolSize
	if pool <= 0 {
		pool = defaultPoolSize
	}
	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: pool,
	}
}

// Connect opens a client and verifies the server answers a ping before the
// cooldown store is built on top of it.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(cfg.options())

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
