package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// SQLiteStore implements Store on a single embedded SQLite database file.
type SQLiteStore struct {
	mu          sync.Mutex
	db          *sqlx.DB
	path        string
	now         func() time.Time
	initialized bool
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		s.now = now
	}
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and
// brings its schema up to date. The pool is pinned to one connection:
// the application is a single writer and ":memory:" databases are
// per-connection.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	if dbPath != memoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening sqlite db %s: %w", dbPath, err)
	}

	if dbPath != memoryPath {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	s := &SQLiteStore{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Initialize(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Initialize ensures every table exists. It is safe to call repeatedly;
// after the first success it returns immediately on the same handle.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrNotInitialized
	}
	if s.initialized {
		return nil
	}
	if err := runMigrations(ctx, s.db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	s.initialized = true
	return nil
}

// Path returns the database file the store was opened on.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the underlying database connection. Later calls fail with
// ErrNotInitialized.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.initialized = false
	return err
}

// conn returns the live handle or ErrNotInitialized.
func (s *SQLiteStore) conn() (*sqlx.DB, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil || !s.initialized {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

// timestamp returns the current time in UTC for stored timestamps.
func (s *SQLiteStore) timestamp() time.Time {
	return s.now().UTC()
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
