package notification

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"salonflow/utils"
)

// RedisPublisher publishes booking events on Redis pub/sub channels.
type RedisPublisher struct {
	Client *redis.Client
}

// NewRedisPublisher creates a Publisher backed by the given Redis client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{Client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload any) {
	logger := utils.GetLogger()
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal event payload", zap.String("topic", topic), zap.Error(err))
		return
	}
	if err := p.Client.Publish(ctx, topic, data).Err(); err != nil {
		logger.Warn("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
