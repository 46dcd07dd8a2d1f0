package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-api/internal/domain/content"
)

const contentTable = "content_kv"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresContentStorage struct {
	db        *pgxpool.Pool
	namespace string
}

// NewPostgresContentStorage keeps content keys as rows of content_kv. The
// namespace is prepended to the key column so several sites can share a
// table.
func NewPostgresContentStorage(db *pgxpool.Pool, namespace string) content.Storage {
	return &postgresContentStorage{db: db, namespace: namespace}
}

func (s *postgresContentStorage) Get(ctx context.Context, key string) (string, error) {
	query, args, err := psql.Select("value").
		From(contentTable).
		Where(sq.Eq{"key": s.namespace + key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build content select: %w", err)
	}

	var value string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", content.ErrKeyNotFound
		}
		return "", fmt.Errorf("select content %s: %w", key, err)
	}
	return value, nil
}

func (s *postgresContentStorage) Set(ctx context.Context, key, value string) error {
	query, args, err := psql.Insert(contentTable).
		Columns("key", "value", "updated_at").
		Values(s.namespace+key, value, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build content upsert: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert content %s: %w", key, err)
	}
	return nil
}

func (s *postgresContentStorage) Remove(ctx context.Context, key string) error {
	query, args, err := psql.Delete(contentTable).
		Where(sq.Eq{"key": s.namespace + key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build content delete: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete content %s: %w", key, err)
	}
	return nil
}
