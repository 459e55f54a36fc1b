// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"salonflow/config"

	"github.com/go-redis/redis/v8"
)

var (
	// OTPCacheClient holds OTP challenges and their attempt counters.
	OTPCacheClient *redis.Client
	// RateLimitCacheClient holds per-phone send counters and cooldown markers.
	RateLimitCacheClient *redis.Client
	// EventsClient is used for fire-and-forget booking event publication.
	EventsClient *redis.Client
)

func newClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func mustPing(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitRedis initializes all Redis clients and verifies connectivity.
func InitRedis() {
	OTPCacheClient = newClient(config.AppConfig.RedisOTPDB)
	mustPing(OTPCacheClient, "OTP")
	RateLimitCacheClient = newClient(config.AppConfig.RedisRateLimitDB)
	mustPing(RateLimitCacheClient, "RateLimit")
	EventsClient = newClient(config.AppConfig.RedisEventsDB)
	mustPing(EventsClient, "Events")
}

// GetOTPCacheClient returns the Redis client for OTP challenges.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		OTPCacheClient = newClient(config.AppConfig.RedisOTPDB)
		mustPing(OTPCacheClient, "OTP")
	}
	return OTPCacheClient
}

// GetRateLimitCacheClient returns the Redis client for send-rate counters.
func GetRateLimitCacheClient() *redis.Client {
	if RateLimitCacheClient == nil {
		RateLimitCacheClient = newClient(config.AppConfig.RedisRateLimitDB)
		mustPing(RateLimitCacheClient, "RateLimit")
	}
	return RateLimitCacheClient
}

// GetEventsClient returns the Redis client used for event publication.
func GetEventsClient() *redis.Client {
	if EventsClient == nil {
		EventsClient = newClient(config.AppConfig.RedisEventsDB)
		mustPing(EventsClient, "Events")
	}
	return EventsClient
}
