package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-api/internal/domain/content"
)

type redisContentStorage struct {
	rdb       redis.Cmdable
	namespace string
}

// NewRedisContentStorage keeps every content key as a plain Redis string
// under namespace+key, without expiry.
func NewRedisContentStorage(rdb redis.Cmdable, namespace string) content.Storage {
	return &redisContentStorage{rdb: rdb, namespace: namespace}
}

func (s *redisContentStorage) key(k string) string {
	return s.namespace + k
}

func (s *redisContentStorage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", content.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *redisContentStorage) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *redisContentStorage) Remove(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
