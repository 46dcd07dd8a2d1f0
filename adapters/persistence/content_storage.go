package persistence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// OpenContentStorage connects the backend named by storage.backend. rdb is
// reused for the redis backend when given. The returned func releases
// whatever was opened here.
func OpenContentStorage(ctx context.Context, cfg config.Config, log logger.Logger, rdb *redis.Client) (content.Storage, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresContentStorage(pool, cfg.Storage.Namespace), pool.Close, nil

	case config.StorageBackendRedis, "":
		if rdb != nil {
			return NewRedisContentStorage(rdb, cfg.Storage.Namespace), func() {}, nil
		}
		own, err := NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisContentStorage(own, cfg.Storage.Namespace), func() { _ = own.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
