package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/xtraders/tradelog/internal/errors"
)

// SQLiteStore implements KVStore using SQLite.
type SQLiteStore struct {
	db         *sql.DB
	mu         sync.RWMutex
	updateTime map[string]time.Time
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{
		db:         db,
		updateTime: make(map[string]time.Time),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewStorageError("get", key, err)
	}
	return value, true, nil
}

// Set replaces the value stored under key.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, now)
	if err != nil {
		return errors.NewStorageError("set", key, err)
	}

	s.mu.Lock()
	s.updateTime[key] = now
	s.mu.Unlock()
	return nil
}

// UpdatedAt returns the last write time of key.
func (s *SQLiteStore) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	s.mu.RLock()
	if t, ok := s.updateTime[key]; ok {
		s.mu.RUnlock()
		return t, nil
	}
	s.mu.RUnlock()

	var updated time.Time
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&updated)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, errors.NewStorageError("updated_at", key, err)
	}

	s.mu.Lock()
	s.updateTime[key] = updated
	s.mu.Unlock()
	return updated, nil
}
