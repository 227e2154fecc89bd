package redis

import (
	"testing"
	"time"
)

func TestConfig_Options(t *testing.T) {
	opts := Config{
		Addr:     "redis.internal:6379",
		Password: "s3cret",
		DB:       2,
		PoolSize: 16,
	}.options()

	if opts.Addr != "redis.internal:6379" {
		t.Fatalf("addr not applied: %s", opts.Addr)
	}
	if opts.Password != "s3cret" {
		t.Fatalf("password not applied: %s", opts.Password)
	}
	if opts.DB != 2 {
		t.Fatalf("db not applied: %d", opts.DB)
	}
	if opts.PoolSize != 16 {
		t.Fatalf("pool size not applied: %d", opts.PoolSize)
	}
}

func TestConfig_OptionsDefaultsPoolSize(t *testing.T) {
	opts := Config{Addr: "localhost:6379"}.options()
	if opts.PoolSize != defaultPoolSize {
		t.Fatalf("expected default pool size, got %d", opts.PoolSize)
	}
}

func TestNewCooldownStore_WindowFallback(t *testing.T) {
	store := NewCooldownStore(nil, 0)
	if store.window != defaultCooldown {
		t.Fatalf("expected default window, got %v", store.window)
	}

	store = NewCooldownStore(nil, 30*time.Second)
	if store.window != 30*time.Second {
		t.Fatalf("expected configured window, got %v", store.window)
	}
}

func TestCooldownStore_KeyPerEmail(t *testing.T) {
	store := NewCooldownStore(nil, time.Minute)
	if got := store.key("jane@example.com"); got != "otp_cooldown:jane@example.com" {
		t.Fatalf("unexpected key: %s", got)
	}
}
