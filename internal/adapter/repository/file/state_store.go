package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iho/expenses-tracker/internal/usecase"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// StateStore implements usecase.StateStore with one file per key in a directory.
// Writes go to a temporary file that is renamed over the target, so a crash never
// leaves a truncated state behind.
type StateStore struct {
	dir string
}

// NewStateStore creates a new StateStore rooted at dir.
func NewStateStore(dir string) *StateStore {
	return &StateStore{dir: dir}
}

// Path returns the file holding key.
func (s *StateStore) Path(key string) string {
	return filepath.Join(s.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

// Load reads the blob stored under key.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, usecase.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	return data, nil
}

// Save atomically replaces the blob stored under key.
func (s *StateStore) Save(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.Path(key)); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Ping checks that the state directory is usable.
func (s *StateStore) Ping(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("state directory: %w", err)
	}
	return nil
}
