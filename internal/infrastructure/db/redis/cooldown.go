package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCooldown = time.Minute

// CooldownStore throttles repeated forgot-password requests per email.
// Key format: otp_cooldown:<normalized_email>
type CooldownStore struct {
	client *redis.Client
	window time.Duration
}

// NewCooldownStore creates a CooldownStore wrapping the given Redis client.
// A non-positive window falls back to one minute.
func NewCooldownStore(client *redis.Client, window time.Duration) *CooldownStore {
	if window <= 0 {
		window = defaultCooldown
	}
	return &CooldownStore{client: client, window: window}
}

// Acquire atomically claims the cooldown slot for email. It returns false
// when a previous claim is still within the window.
func (c *CooldownStore) Acquire(ctx context.Context, email string) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.key(email), "1", c.window).Result()
	if err != nil {
		return false, fmt.Errorf("otp cooldown: %w", err)
	}
	return ok, nil
}

func (c *CooldownStore) key(email string) string {
	return "otp_cooldown:" + email
}
