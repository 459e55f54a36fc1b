package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	cooldownKeyPrefix = "otp:cooldown:"
	hourlyKeyPrefix   = "otp:hourly:"
)

// RateLimiter guards per-phone send budgets. Reserve consumes budget
// atomically before dispatch; Refund returns it when the gateway fails, so a
// delivery failure never costs the user a retry.
type RateLimiter interface {
	// Reserve returns (0, true, nil) when a send is allowed. When blocked, it
	// returns the seconds to wait.
	Reserve(ctx context.Context, phone string) (retryAfter int, allowed bool, err error)
	Refund(ctx context.Context, phone string) error
}

// RedisRateLimiter implements RateLimiter with a cooldown marker and a rolling
// hourly counter per phone. State lives in Redis with TTLs, so it survives
// restarts and is shared across instances.
type RedisRateLimiter struct {
	Client    *redis.Client
	Cooldown  time.Duration
	HourlyCap int
}

// NewRedisRateLimiter creates a RateLimiter backed by the given client.
func NewRedisRateLimiter(client *redis.Client, cooldown time.Duration, hourlyCap int) *RedisRateLimiter {
	return &RedisRateLimiter{Client: client, Cooldown: cooldown, HourlyCap: hourlyCap}
}

func (l *RedisRateLimiter) Reserve(ctx context.Context, phone string) (int, bool, error) {
	cooldownKey := cooldownKeyPrefix + phone
	ok, err := l.Client.SetNX(ctx, cooldownKey, 1, l.Cooldown).Result()
	if err != nil {
		return 0, false, fmt.Errorf("failed to check send cooldown: %w", err)
	}
	if !ok {
		ttl, err := l.Client.TTL(ctx, cooldownKey).Result()
		if err != nil || ttl < 0 {
			return int(l.Cooldown.Seconds()), false, nil
		}
		return retrySeconds(ttl), false, nil
	}

	hourlyKey := hourlyKeyPrefix + phone
	n, err := l.Client.Incr(ctx, hourlyKey).Result()
	if err != nil {
		return 0, false, fmt.Errorf("failed to increment hourly counter: %w", err)
	}
	if n == 1 {
		if err := l.Client.Expire(ctx, hourlyKey, time.Hour).Err(); err != nil {
			return 0, false, fmt.Errorf("failed to set hourly counter expiry: %w", err)
		}
	}
	if n > int64(l.HourlyCap) {
		// A cap denial must leave no side effects: give back the cooldown
		// marker and the counter bump so the user is not further penalized.
		if err := l.Client.Del(ctx, cooldownKey).Err(); err != nil {
			return 0, false, fmt.Errorf("failed to clear cooldown after cap denial: %w", err)
		}
		if err := l.Client.Decr(ctx, hourlyKey).Err(); err != nil {
			return 0, false, fmt.Errorf("failed to restore hourly counter: %w", err)
		}
		ttl, err := l.Client.TTL(ctx, hourlyKey).Result()
		if err != nil || ttl < 0 {
			return int(time.Hour.Seconds()), false, nil
		}
		return retrySeconds(ttl), false, nil
	}
	return 0, true, nil
}

func (l *RedisRateLimiter) Refund(ctx context.Context, phone string) error {
	if err := l.Client.Del(ctx, cooldownKeyPrefix+phone).Err(); err != nil {
		return fmt.Errorf("failed to clear cooldown: %w", err)
	}
	if err := l.Client.Decr(ctx, hourlyKeyPrefix+phone).Err(); err != nil {
		return fmt.Errorf("failed to refund hourly counter: %w", err)
	}
	return nil
}

func retrySeconds(ttl time.Duration) int {
	secs := int((ttl + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
