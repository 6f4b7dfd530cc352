package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/cache"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps state in Redis, for a viewer fleet sharing one selected
// restaurant or for operators running the CLI from several hosts.
type RedisStore struct {
	client *cache.Client
	prefix string
}

func NewRedisStore(client *cache.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key))
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	// state never expires
	if err := s.client.Set(ctx, s.key(key), value, 0); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Delete(ctx, full...); err != nil {
		return fmt.Errorf("failed to remove keys: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
