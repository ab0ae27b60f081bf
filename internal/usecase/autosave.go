package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Saver checkpoints state.
type Saver interface {
	Save(ctx context.Context) error
}

// Autosaver checkpoints state on a fixed interval and once more when it is stopped.
type Autosaver struct {
	saver       Saver
	interval    time.Duration
	saveTimeout time.Duration
	logger      zerolog.Logger
}

// AutosaverConfig configures an Autosaver.
type AutosaverConfig struct {
	Saver       Saver
	Interval    time.Duration // Checkpoint period
	SaveTimeout time.Duration // Bound for each save
	Logger      zerolog.Logger
}

// NewAutosaver creates a new Autosaver.
func NewAutosaver(cfg AutosaverConfig) *Autosaver {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultAutosaveInterval
	}
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultSaveTimeout
	}

	return &Autosaver{
		saver:       cfg.Saver,
		interval:    cfg.Interval,
		saveTimeout: cfg.SaveTimeout,
		logger:      cfg.Logger,
	}
}

// Start runs until ctx is cancelled, then performs a final save with a fresh context.
// Save failures are logged and never stop the loop.
func (a *Autosaver) Start(ctx context.Context) error {
	a.logger.Info().Dur("interval", a.interval).Msg("autosaver started")

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("autosaver shutting down, saving state")
			return a.save(context.WithoutCancel(ctx))
		case <-ticker.C:
			if err := a.save(ctx); err != nil {
				a.logger.Error().Err(err).Msg("autosave failed")
			}
		}
	}
}

func (a *Autosaver) save(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.saveTimeout)
	defer cancel()
	return a.saver.Save(ctx)
}
