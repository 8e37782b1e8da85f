// Package sqlite persists client state in a local SQLite file, standing in for
// browser local storage between CLI runs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/5hraddha/around/internal/around/storage"
	"github.com/5hraddha/around/internal/around/storage/sqlite/migrations"
	"github.com/5hraddha/around/internal/platform/storage/sqlitemigrate"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store is a SQLite-backed storage.TokenStore.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ storage.TokenStore = (*Store)(nil)

// Open opens and migrates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := MemoryPath
	if path != MemoryPath {
		dsn = "file:" + filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps :memory: databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Token implements storage.TokenStore.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	value, ok, err := s.get(ctx, storage.TokenKey)
	if err != nil {
		return "", false, err
	}
	return value, ok && value != "", nil
}

// SetToken implements storage.TokenStore.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.put(ctx, storage.TokenKey, token)
}

// ClearToken implements storage.TokenStore.
func (s *Store) ClearToken(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE state_key = ?`, storage.TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	if err := s.ready(); err != nil {
		return "", false, err
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT state_value FROM client_state WHERE state_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client_state (state_key, state_value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(state_key) DO UPDATE SET state_value = excluded.state_value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}
