package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write key to redis")
	}
}

// Get returns the cached value and whether the key existed. Cache misses and
// transport errors both read as a miss; redis is never load-bearing.
func Get(ctx context.Context, key string) (string, bool) {
	if Rdb == nil {
		return "", false
	}
	v, err := Rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read key from redis")
		return "", false
	}
	return v, true
}

// SetNX claims key atomically and reports whether this caller won the claim.
// Used as a durable idempotency token for one-shot actions.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) bool {
	if Rdb == nil {
		return false
	}
	ok, err := Rdb.SetNX(ctx, key, value, expiration).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to claim key in redis")
		return false
	}
	return ok
}
