package redis

import (
	"context"
	"patient-service/internal/app/contracts"
	"patient-service/internal/pkg/exceptions"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

// IncrementWithTTL bumps the counter and refreshes its expiry in one
// MULTI/EXEC round trip, returning the new value.
func (r *redisRepository) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int, error) {
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, exceptions.ErrRedisIncrement(err)
	}
	return int(incr.Val()), nil
}

func (r *redisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
