package usecase

import (
	"context"
	"time"

	"github.com/iho/expenses-tracker/internal/domain"
)

// StateStore is a byte-level backend holding one blob per application key.
type StateStore interface {
	// Load returns ErrStateNotFound when nothing was saved under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Ping(ctx context.Context) error
}

// StateRepository loads and checkpoints the whole application state.
type StateRepository interface {
	Load(ctx context.Context) (*domain.AppState, error)
	Save(ctx context.Context, state *domain.AppState) error
	Ping(ctx context.Context) error
}

// Sealer encrypts and authenticates state blobs at rest.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Retrier retries transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// Metrics records tracker activity.
type Metrics interface {
	EntryAdded(entryType domain.EntryType)
	EntryRemoved()
	EntriesTracked(count int)
	StateLoaded(err error)
	StateSaved(duration time.Duration, err error)
}
