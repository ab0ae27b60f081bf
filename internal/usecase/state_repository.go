package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/iho/expenses-tracker/internal/domain"
)

var (
	// ErrStateNotFound is returned by stores that hold nothing under the requested key.
	ErrStateNotFound = errors.New("state not found")
	// ErrCorruptState is returned when a stored blob cannot be opened or decoded.
	ErrCorruptState = errors.New("state is corrupt")
	// ErrStateProtected is returned by Save while the stored blob could not be read or backed up.
	ErrStateProtected = errors.New("refusing to overwrite unreadable state")
)

// corruptKeySuffix separates the original key from the backup timestamp.
const corruptKeySuffix = ".corrupt-"

// BlobRepository implements StateRepository on top of a StateStore. The state is encoded as
// JSON and optionally sealed before it reaches the store.
type BlobRepository struct {
	store   StateStore
	key     string
	sealer  Sealer
	retrier Retrier
	now     func() time.Time

	mu        sync.Mutex
	protected bool
}

// BlobOption configures a BlobRepository.
type BlobOption func(*BlobRepository)

// WithSealer seals blobs before they are written and opens them after they are read.
func WithSealer(s Sealer) BlobOption {
	return func(r *BlobRepository) { r.sealer = s }
}

// WithRetrier retries store writes.
func WithRetrier(rt Retrier) BlobOption {
	return func(r *BlobRepository) { r.retrier = rt }
}

// NewBlobRepository creates a repository storing state under key.
func NewBlobRepository(store StateStore, key string, opts ...BlobOption) *BlobRepository {
	if key == "" {
		key = DefaultAppID
	}
	r := &BlobRepository{store: store, key: key, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads and decodes the state. The result is normalized and sorted.
// An unreadable blob is copied aside before ErrCorruptState is returned. A backend read
// failure other than ErrStateNotFound blocks Save, so a state that may still exist is
// never replaced by an empty one.
func (r *BlobRepository) Load(ctx context.Context) (*domain.AppState, error) {
	blob, err := r.store.Load(ctx, r.key)
	if err != nil {
		if !errors.Is(err, ErrStateNotFound) {
			r.setProtected(true)
		}
		return nil, err
	}

	state, err := r.decode(blob)
	if err != nil {
		return nil, r.quarantine(ctx, blob, err)
	}

	r.setProtected(false)

	return state, nil
}

func (r *BlobRepository) decode(blob []byte) (*domain.AppState, error) {
	var err error
	if r.sealer != nil {
		blob, err = r.sealer.Open(blob)
		if err != nil {
			return nil, err
		}
	}

	state := &domain.AppState{}
	if err := json.Unmarshal(blob, state); err != nil {
		return nil, err
	}
	state.Normalize()

	return state, nil
}

// quarantine copies an unreadable blob under a backup key. When the copy fails, Save is
// refused until a Load succeeds.
func (r *BlobRepository) quarantine(ctx context.Context, blob []byte, cause error) error {
	backupKey := r.key + corruptKeySuffix + strconv.FormatInt(r.now().UnixNano(), 10)

	if err := r.store.Save(ctx, backupKey, blob); err != nil {
		r.setProtected(true)
		return fmt.Errorf("%w: %v; backup failed: %w", ErrCorruptState, cause, err)
	}
	r.setProtected(false)

	return fmt.Errorf("%w: %v; kept as %q", ErrCorruptState, cause, backupKey)
}

func (r *BlobRepository) setProtected(v bool) {
	r.mu.Lock()
	r.protected = v
	r.mu.Unlock()
}

// Save encodes state and writes it. Callers must not mutate state concurrently.
// It returns ErrStateProtected while an earlier Load left the stored state unaccounted for.
func (r *BlobRepository) Save(ctx context.Context, state *domain.AppState) error {
	r.mu.Lock()
	protected := r.protected
	r.mu.Unlock()
	if protected {
		return ErrStateProtected
	}

	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if r.sealer != nil {
		blob, err = r.sealer.Seal(blob)
		if err != nil {
			return fmt.Errorf("seal state: %w", err)
		}
	}

	write := func() error { return r.store.Save(ctx, r.key, blob) }
	if r.retrier == nil {
		return write()
	}
	return r.retrier.Retry(ctx, write)
}

// Ping checks the underlying store.
func (r *BlobRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
