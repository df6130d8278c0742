// Package cache is a small SQLite-backed store of raw display API responses,
// keyed by endpoint and identifier. It lets the browser re-display recently
// seen entities without a round trip and keeps the last good payload around
// when the archive is unreachable.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	endpoint   TEXT NOT NULL,
	key        TEXT NOT NULL,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (endpoint, key)
);
CREATE INDEX IF NOT EXISTS idx_responses_fetched_at ON responses(fetched_at);
`

// Store is a TTL-bounded response cache.
type Store struct {
	db  *sql.DB
	ttl time.Duration
	log *zap.Logger
	now func() time.Time
}

// Open creates or opens the cache database at path.
func Open(path string, ttl time.Duration, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}

	return &Store{db: db, ttl: ttl, log: log, now: time.Now}, nil
}

// Get returns the cached body for (endpoint, key) if present and fresh.
// Expired entries are treated as misses and removed.
func (s *Store) Get(ctx context.Context, endpoint, key string) ([]byte, bool, error) {
	var body []byte
	var fetchedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM responses WHERE endpoint = ? AND key = ?`,
		endpoint, key,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}

	if s.now().Sub(time.Unix(fetchedAt, 0)) > s.ttl {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM responses WHERE endpoint = ? AND key = ?`, endpoint, key); err != nil {
			s.log.Warn("evicting expired cache entry", zap.Error(err))
		}
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores (or replaces) the body for (endpoint, key).
func (s *Store) Put(ctx context.Context, endpoint, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (endpoint, key, body, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(endpoint, key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		endpoint, key, body, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Prune removes every expired entry and returns how many were dropped.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.ttl).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM responses WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.log.Debug("pruned cache entries", zap.Int64("count", n))
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
