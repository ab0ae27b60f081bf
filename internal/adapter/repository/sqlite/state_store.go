package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iho/expenses-tracker/internal/usecase"
)

const (
	loadStateQuery = `SELECT payload FROM app_state WHERE app_key = ?`
	saveStateQuery = `INSERT INTO app_state (app_key, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT (app_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
)

// StateStore implements usecase.StateStore on a SQLite app_state table.
type StateStore struct {
	db *sql.DB
}

// NewStateStore creates a new StateStore. The schema must already be migrated.
func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

// Load returns the payload stored under key.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, loadStateQuery, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return payload, nil
}

// Save upserts the payload stored under key.
func (s *StateStore) Save(ctx context.Context, key string, payload []byte) error {
	updatedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, saveStateQuery, key, payload, updatedAt); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Ping checks the database.
func (s *StateStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
