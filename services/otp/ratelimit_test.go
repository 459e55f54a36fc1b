package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisRateLimiter_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("cooldown blocks an immediate resend", func(t *testing.T) {
		mr, client := newTestRedis(t)
		limiter := NewRedisRateLimiter(client, time.Minute, 5)

		if _, allowed, err := limiter.Reserve(ctx, testPhone); err != nil || !allowed {
			t.Fatalf("expected first reserve allowed, got allowed=%v err=%v", allowed, err)
		}

		retryAfter, allowed, err := limiter.Reserve(ctx, testPhone)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if allowed {
			t.Fatalf("expected second reserve blocked by cooldown")
		}
		if retryAfter != 60 {
			t.Fatalf("expected retryAfter 60, got %d", retryAfter)
		}

		mr.FastForward(61 * time.Second)
		if _, allowed, _ := limiter.Reserve(ctx, testPhone); !allowed {
			t.Fatalf("expected reserve allowed once the cooldown elapsed")
		}
	})

	t.Run("hourly cap denial leaves no side effects", func(t *testing.T) {
		mr, client := newTestRedis(t)
		limiter := NewRedisRateLimiter(client, time.Minute, 2)

		for i := 0; i < 2; i++ {
			if _, allowed, err := limiter.Reserve(ctx, testPhone); err != nil || !allowed {
				t.Fatalf("reserve %d: expected allowed, got allowed=%v err=%v", i+1, allowed, err)
			}
			mr.FastForward(61 * time.Second)
		}

		retryAfter, allowed, err := limiter.Reserve(ctx, testPhone)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if allowed {
			t.Fatalf("expected reserve blocked by the hourly cap")
		}
		if retryAfter <= 0 || retryAfter > 3600 {
			t.Fatalf("expected retryAfter within the hourly window, got %d", retryAfter)
		}
		if mr.Exists(cooldownKeyPrefix + testPhone) {
			t.Fatalf("expected no cooldown burned by a cap denial")
		}
		if count, err := mr.Get(hourlyKeyPrefix + testPhone); err != nil || count != "2" {
			t.Fatalf("expected hourly counter restored to 2, got %q err=%v", count, err)
		}

		// Repeated denials must not creep the counter either.
		if _, allowed, _ := limiter.Reserve(ctx, testPhone); allowed {
			t.Fatalf("expected repeat reserve still blocked")
		}
		if count, _ := mr.Get(hourlyKeyPrefix + testPhone); count != "2" {
			t.Fatalf("expected hourly counter stable at 2, got %q", count)
		}
	})

	t.Run("cap clears when the hourly window closes", func(t *testing.T) {
		mr, client := newTestRedis(t)
		limiter := NewRedisRateLimiter(client, time.Second, 1)

		if _, allowed, _ := limiter.Reserve(ctx, testPhone); !allowed {
			t.Fatalf("expected first reserve allowed")
		}
		mr.FastForward(2 * time.Second)
		if _, allowed, _ := limiter.Reserve(ctx, testPhone); allowed {
			t.Fatalf("expected reserve blocked at the cap")
		}

		mr.FastForward(time.Hour)
		if _, allowed, _ := limiter.Reserve(ctx, testPhone); !allowed {
			t.Fatalf("expected reserve allowed in a fresh window")
		}
	})

	t.Run("refund returns the full budget", func(t *testing.T) {
		mr, client := newTestRedis(t)
		limiter := NewRedisRateLimiter(client, time.Minute, 5)

		if _, allowed, _ := limiter.Reserve(ctx, testPhone); !allowed {
			t.Fatalf("expected reserve allowed")
		}
		if err := limiter.Refund(ctx, testPhone); err != nil {
			t.Fatalf("refund failed: %v", err)
		}
		if mr.Exists(cooldownKeyPrefix + testPhone) {
			t.Fatalf("expected cooldown cleared by refund")
		}
		if _, allowed, _ := limiter.Reserve(ctx, testPhone); !allowed {
			t.Fatalf("expected immediate reserve after refund")
		}
	})
}

func TestRetrySeconds(t *testing.T) {
	cases := []struct {
		ttl  time.Duration
		want int
	}{
		{60 * time.Second, 60},
		{1500 * time.Millisecond, 2}, // rounds up
		{100 * time.Millisecond, 1},  // never reports zero
		{0, 1},
	}
	for _, tc := range cases {
		if got := retrySeconds(tc.ttl); got != tc.want {
			t.Fatalf("retrySeconds(%v) = %d, want %d", tc.ttl, got, tc.want)
		}
	}
}
