package main

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/expenses-tracker/internal/infrastructure/config"
	"github.com/iho/expenses-tracker/internal/infrastructure/idgen"
	"github.com/iho/expenses-tracker/internal/infrastructure/logger"
	"github.com/iho/expenses-tracker/internal/infrastructure/metrics"
	"github.com/iho/expenses-tracker/internal/usecase"
)

// app is the wired tracker shared by every command.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	tracker  *usecase.TrackerUseCase
	backend  *backend
}

// newApp loads configuration, connects the backend and restores the saved state.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	lg := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: logOut,
	})
	log.Logger = lg

	b, err := openBackend(ctx, cfg, lg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tracker := usecase.NewTrackerUseCase(usecase.TrackerConfig{
		Repo:    usecase.NewBlobRepository(b.store, cfg.AppID, b.opts...),
		IDGen:   idgen.NewULIDGenerator(),
		Clock:   usecase.SystemClock{},
		Metrics: metrics.New(registry),
		Logger:  lg.With().Str("component", "tracker").Logger(),
	})
	tracker.Load(ctx)

	return &app{
		cfg:      cfg,
		logger:   lg,
		registry: registry,
		tracker:  tracker,
		backend:  b,
	}, nil
}

// Close releases the backend.
func (a *app) Close() {
	a.backend.close()
}
