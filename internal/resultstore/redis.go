// internal/resultstore/redis.go
package resultstore

import (
	"context"
	"time"

	"credit-intake/internal/common/database"
	"credit-intake/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the result under ResultKey in Redis, for deployments
// where the submitting process and the consumer are not the same process.
// Consumers of this slot poll; there is no watch channel across processes.
type RedisSlot struct {
	client *database.RedisClient
	ttl    time.Duration
}

func NewRedisSlot(client *database.RedisClient, ttl time.Duration) *RedisSlot {
	return &RedisSlot{client: client, ttl: ttl}
}

func (s *RedisSlot) Put(ctx context.Context, raw string) error {
	if err := s.client.Set(ctx, ResultKey, raw, s.ttl); err != nil {
		return errors.NewResultStoreError(err)
	}
	return nil
}

func (s *RedisSlot) Get(ctx context.Context) (string, bool, error) {
	val, err := s.client.Get(ctx, ResultKey)
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewResultStoreError(err)
	}
	return val, true, nil
}

func (s *RedisSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, ResultKey); err != nil {
		return errors.NewResultStoreError(err)
	}
	return nil
}
