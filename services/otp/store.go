package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"salonflow/models"
)

const (
	challengeKeyPrefix = "otp:challenge:"
	attemptsKeyPrefix  = "otp:attempts:"
)

// ChallengeStore persists OTP challenges keyed by hold. Saving a challenge for
// a hold replaces any previous one. Attempt decrements are atomic so two
// near-simultaneous wrong guesses cannot both pass a stale attempts check.
type ChallengeStore interface {
	Save(ctx context.Context, ch models.OtpChallenge, attempts int, ttl time.Duration) error
	Get(ctx context.Context, holdID string) (*models.OtpChallenge, error)
	Attempts(ctx context.Context, holdID string) (int, error)
	DecrementAttempts(ctx context.Context, holdID string) (int, error)
	Delete(ctx context.Context, holdID string) error
}

// RedisChallengeStore implements ChallengeStore on Redis. The challenge JSON
// and its attempt counter share a TTL equal to the code's validity window.
type RedisChallengeStore struct {
	Client *redis.Client
}

// NewRedisChallengeStore creates a ChallengeStore backed by the given client.
func NewRedisChallengeStore(client *redis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{Client: client}
}

func (s *RedisChallengeStore) Save(ctx context.Context, ch models.OtpChallenge, attempts int, ttl time.Duration) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}
	if err := s.Client.Set(ctx, challengeKeyPrefix+ch.HoldID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	if err := s.Client.Set(ctx, attemptsKeyPrefix+ch.HoldID, attempts, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store attempt counter: %w", err)
	}
	return nil
}

func (s *RedisChallengeStore) Get(ctx context.Context, holdID string) (*models.OtpChallenge, error) {
	data, err := s.Client.Get(ctx, challengeKeyPrefix+holdID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	var ch models.OtpChallenge
	if err := json.Unmarshal([]byte(data), &ch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}
	return &ch, nil
}

func (s *RedisChallengeStore) Attempts(ctx context.Context, holdID string) (int, error) {
	n, err := s.Client.Get(ctx, attemptsKeyPrefix+holdID).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load attempt counter: %w", err)
	}
	return n, nil
}

func (s *RedisChallengeStore) DecrementAttempts(ctx context.Context, holdID string) (int, error) {
	n, err := s.Client.Decr(ctx, attemptsKeyPrefix+holdID).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to decrement attempt counter: %w", err)
	}
	return int(n), nil
}

func (s *RedisChallengeStore) Delete(ctx context.Context, holdID string) error {
	if err := s.Client.Del(ctx, challengeKeyPrefix+holdID, attemptsKeyPrefix+holdID).Err(); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}
