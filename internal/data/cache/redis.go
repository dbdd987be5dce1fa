package cache

import (
	"context"
	"errors"
	"time"

	"salon-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Store is the key/value surface the caches need.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg utils.RedisConfig) Store {
	return &redisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Ping checks the redis connection; other stores are always reachable.
func Ping(ctx context.Context, s Store) error {
	if rs, ok := s.(*redisStore); ok {
		return rs.client.Ping(ctx).Err()
	}
	return nil
}
