package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/expenses-tracker/internal/usecase"
)

// StateStore implements usecase.StateStore using Redis. Blobs never expire.
type StateStore struct {
	client *redis.Client
	prefix string
}

// NewStateStore creates a new StateStore.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{
		client: client,
		prefix: "state:",
	}
}

// Load retrieves the blob stored under key.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get state: %w", err)
	}
	return data, nil
}

// Save replaces the blob stored under key.
func (s *StateStore) Save(ctx context.Context, key string, payload []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set state: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *StateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
