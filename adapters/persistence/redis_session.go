package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-api/internal/domain/session"
)

const sessionKeyPrefix = "session:"

type redisSessionStorage struct {
	rdb       redis.Cmdable
	namespace string
}

// NewRedisSessionStorage stores sessions under namespace+"session:"+id and
// lets Redis expire them.
func NewRedisSessionStorage(rdb redis.Cmdable, namespace string) session.Storage {
	return &redisSessionStorage{rdb: rdb, namespace: namespace}
}

func (s *redisSessionStorage) key(id string) string {
	return s.namespace + sessionKeyPrefix + id
}

func (s *redisSessionStorage) Get(ctx context.Context, sessionID string) (string, error) {
	v, err := s.rdb.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", session.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get session: %w", err)
	}
	return v, nil
}

func (s *redisSessionStorage) Set(ctx context.Context, sessionID, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.key(sessionID), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *redisSessionStorage) Remove(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
