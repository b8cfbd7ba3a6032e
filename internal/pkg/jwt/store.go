package jwt

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore keeps revoked tokens in redis with a TTL matching the token expiry.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Revoke(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, key, 1, ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
