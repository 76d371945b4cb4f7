package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/matchday/internal/domain"
)

// Store implements domain.Storage on the kv_store table
type Store struct {
	log zerolog.Logger
	db  *DB
}

// NewStore creates a sqlite-backed key-value store
func NewStore(log zerolog.Logger, db *DB) *Store {
	return &Store{
		log: log.With().Str("repo", "kv").Logger(),
		db:  db,
	}
}

var _ domain.Storage = (*Store)(nil)

// GetItem returns the value stored under key
func (r *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	queryBuilder := r.db.squirrel.
		Select("value").
		From("kv_store").
		Where(sq.Eq{"key": key})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return "", false, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("GetItem")

	var value string
	err = r.db.handler.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "error executing query")
	}

	return value, true, nil
}

// SetItem inserts or replaces the value stored under key
func (r *Store) SetItem(ctx context.Context, key, value string) error {
	queryBuilder := r.db.squirrel.
		Replace("kv_store").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().Format(time.RFC3339))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("SetItem")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}

// RemoveItem deletes key if present
func (r *Store) RemoveItem(ctx context.Context, key string) error {
	return r.MultiRemove(ctx, []string{key})
}

// GetAllKeys returns every stored key in lexical order
func (r *Store) GetAllKeys(ctx context.Context) ([]string, error) {
	queryBuilder := r.db.squirrel.
		Select("key").
		From("kv_store").
		OrderBy("key")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("GetAllKeys")

	rows, err := r.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}

	return keys, nil
}

// MultiRemove deletes all given keys in one statement
func (r *Store) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	queryBuilder := r.db.squirrel.
		Delete("kv_store").
		Where(sq.Eq{"key": keys})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("MultiRemove")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}

// Close closes the underlying database
func (r *Store) Close() error {
	return r.db.Close()
}
