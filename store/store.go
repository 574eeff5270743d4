// Package store is the embedded key-value cache backing modcache, organized
// into named buckets (one per record type). Keys are UTF-8 strings; values
// are opaque byte slices, JSON in practice. Backed by a single SQLite file
// so the cache survives restarts without external infrastructure.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no record exists under the key.
var ErrNotFound = errors.New("record not found")

// IsNotFound reports whether err means the key was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// DefaultQueryTimeout bounds every store operation. Prevents indefinite
// hangs on slow or contended storage.
const DefaultQueryTimeout = 5 * time.Second

// Store is a bucketed key-value store on disk.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithQueryTimeout sets the per-operation timeout. Defaults to
// DefaultQueryTimeout.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Store) { s.queryTimeout = d }
}

// Open opens or creates the store at dbPath, creating parent directories as
// needed. If dbPath is empty or ":memory:", an in-memory database is used.
func Open(dbPath string, opts ...Option) (*Store, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrapf(err, "creating cache directory %s", dir)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening cache db at %s", dbPath)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enabling WAL mode")
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (
		bucket TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		PRIMARY KEY (bucket, key)
	)`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating cache table")
	}

	s := &Store{db: db, queryTimeout: DefaultQueryTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// Get retrieves the value stored under (bucket, key). Returns ErrNotFound
// when the key is absent.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(opCtx,
		`SELECT value FROM cache WHERE bucket = ? AND key = ?`, bucket, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%s/%s", bucket, key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s/%s", bucket, key)
	}
	return value, nil
}

// Put stores value under (bucket, key), overwriting any previous value in
// place. At most one record exists per (bucket, key) pair.
func (s *Store) Put(ctx context.Context, bucket, key string, value []byte) error {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(opCtx,
		`INSERT INTO cache (bucket, key, value) VALUES (?, ?, ?)
		ON CONFLICT(bucket, key) DO UPDATE SET value = excluded.value`,
		bucket, key, value,
	)
	return errors.Wrapf(err, "writing %s/%s", bucket, key)
}

// ListPrefix returns the values of all records in bucket whose key begins
// with prefix, in key order. An empty prefix scans the whole bucket.
func (s *Store) ListPrefix(ctx context.Context, bucket, prefix string) ([][]byte, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var rows *sql.Rows
	var err error
	if upper := nextPrefix(prefix); upper == "" {
		rows, err = s.db.QueryContext(opCtx,
			`SELECT value FROM cache WHERE bucket = ? AND key >= ? ORDER BY key`,
			bucket, prefix)
	} else {
		rows, err = s.db.QueryContext(opCtx,
			`SELECT value FROM cache WHERE bucket = ? AND key >= ? AND key < ? ORDER BY key`,
			bucket, prefix, upper)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s with prefix %q", bucket, prefix)
	}
	defer rows.Close()

	var values [][]byte
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil, errors.Wrapf(err, "scanning %s with prefix %q", bucket, prefix)
		}
		values = append(values, value)
	}
	return values, errors.Wrapf(rows.Err(), "scanning %s with prefix %q", bucket, prefix)
}

// Close shuts down the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// nextPrefix returns the smallest string that sorts after every string with
// the given prefix, for use as a half-open range bound. Returns "" when no
// such bound exists (empty prefix or all 0xff bytes).
func nextPrefix(prefix string) string {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1])
		}
	}
	return ""
}
