// Package db provides a PostgreSQL-backed response cache, for deployments
// where several service instances share one database.
package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/Kamar-Folarin/portfolio-service/internal/cache"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore is a cache.Store persisted in the response_cache table.
// Rows older than the TTL are treated as absent and deleted on read.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore opens the database and verifies the connection
func NewPostgresStore(ctx context.Context, connectionString string, ttl time.Duration) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newPostgresStore(db, ttl), nil
}

func newPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

// Migrate creates or upgrades the cache schema
func (s *PostgresStore) Migrate() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Get implements cache.Store
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	var fetchedAt time.Time

	err := s.db.QueryRowContext(ctx, `
		SELECT value, fetched_at FROM response_cache
		WHERE key = $1
	`, key).Scan(&value, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	if s.now().Sub(fetchedAt) >= s.ttl {
		// a concurrent Set may have re-stamped the row, so only drop this version
		if _, err := s.db.ExecContext(ctx, `
			DELETE FROM response_cache
			WHERE key = $1 AND fetched_at = $2
		`, key, fetchedAt); err != nil {
			return nil, false, fmt.Errorf("failed to evict stale cache entry: %w", err)
		}
		return nil, false, nil
	}

	return value, true, nil
}

// Set implements cache.Store
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO response_cache (key, value, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			fetched_at = EXCLUDED.fetched_at
	`, key, value, s.now().UTC())

	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Clear implements cache.Store
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM response_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Prune deletes every stale row and returns how many were removed
func (s *PostgresStore) Prune(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM response_cache
		WHERE fetched_at <= $1
	`, s.now().Add(-s.ttl).UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}

// Close implements cache.Store
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

var _ cache.Store = (*PostgresStore)(nil)
