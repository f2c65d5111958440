package passledger

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
)

const passKeyPrefix = "pass:"

var _ secondary.PassLedger = (*RedisLedger)(nil)

// RedisLedger records consumed pass tokens with SETNX so every replica sees the same ledger
type RedisLedger struct {
	redisClient *redis.Client
}

func NewRedisLedger(redisClient *redis.Client) *RedisLedger {
	return &RedisLedger{redisClient: redisClient}
}

func (l *RedisLedger) Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	fresh, err := l.redisClient.SetNX(ctx, passKeyPrefix+tokenID, time.Now().UTC().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume pass token: %w", err)
	}
	return fresh, nil
}
