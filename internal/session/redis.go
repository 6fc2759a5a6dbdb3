// internal/session/redis.go
package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "stratix:session:"

// RedisStore persists sessions in Redis so they survive process restarts
// and can be shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A non-positive ttl means
// sessions never expire.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, token string, profile []byte) error {
	var ttl time.Duration
	if s.ttl > 0 {
		ttl = s.ttl
	}
	return s.client.Set(ctx, keyPrefix+token, profile, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, token string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
