package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/expenses-tracker/internal/usecase"
)

const (
	loadStateQuery = `SELECT payload FROM app_state WHERE app_key = $1`
	saveStateQuery = `INSERT INTO app_state (app_key, payload, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (app_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// StateStore implements usecase.StateStore on the app_state table.
type StateStore struct {
	pool pgxPool
}

// NewStateStore creates a new StateStore.
func NewStateStore(pool *pgxpool.Pool) *StateStore {
	return newStateStoreWithPool(pool)
}

func newStateStoreWithPool(pool pgxPool) *StateStore {
	return &StateStore{pool: pool}
}

// Load returns the payload stored under key.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, loadStateQuery, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usecase.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return payload, nil
}

// Save upserts the payload stored under key.
func (s *StateStore) Save(ctx context.Context, key string, payload []byte) error {
	if _, err := s.pool.Exec(ctx, saveStateQuery, key, payload); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *StateStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
