package usecase

import "time"

const (
	// DefaultAutosaveInterval is how often the autosaver checkpoints state.
	DefaultAutosaveInterval = 60 * time.Second

	// DefaultSaveTimeout bounds a single save, including the final one on shutdown.
	DefaultSaveTimeout = 10 * time.Second

	// DefaultAppID keys the persisted state when none is configured.
	DefaultAppID = "expenses-tracker"
)
