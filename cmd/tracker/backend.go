package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	fileRepo "github.com/iho/expenses-tracker/internal/adapter/repository/file"
	postgresRepo "github.com/iho/expenses-tracker/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/expenses-tracker/internal/adapter/repository/redis"
	sqliteRepo "github.com/iho/expenses-tracker/internal/adapter/repository/sqlite"
	"github.com/iho/expenses-tracker/internal/infrastructure/config"
	"github.com/iho/expenses-tracker/internal/infrastructure/crypto"
	"github.com/iho/expenses-tracker/internal/infrastructure/postgres"
	"github.com/iho/expenses-tracker/internal/infrastructure/redis"
	"github.com/iho/expenses-tracker/internal/infrastructure/sqlite"
	"github.com/iho/expenses-tracker/internal/usecase"
)

// backend is an opened state store plus the resources to release with it.
type backend struct {
	store usecase.StateStore
	opts  []usecase.BlobOption
	close func()
}

// openBackend connects the state store selected by STATE_BACKEND.
func openBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*backend, error) {
	b := &backend{close: func() {}}

	switch cfg.StateBackend {
	case config.BackendFile:
		if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
		store := fileRepo.NewStateStore(cfg.StateDir)
		logger.Debug().Str("path", store.Path(cfg.AppID)).Msg("using file state store")
		b.store = store

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Debug().Str("path", filepath.Clean(cfg.SQLitePath)).Msg("using sqlite state store")
		b.store = sqliteRepo.NewStateStore(db)
		b.close = func() { db.Close() }

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.AppID)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Debug().Msg("using redis state store")
		b.store = redisRepo.NewStateStore(client)
		b.close = func() { client.Close() }

	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Debug().Msg("using postgres state store")
		b.store = postgresRepo.NewStateStore(pool)
		b.opts = append(b.opts, usecase.WithRetrier(postgresRepo.NewRetrier(logger)))
		b.close = pool.Close

	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}

	if cfg.SealingEnabled() {
		sealer, err := crypto.NewSealer(cfg.StateEncryptionKey, cfg.StateSigningKey)
		if err != nil {
			b.close()
			return nil, fmt.Errorf("create sealer: %w", err)
		}
		b.opts = append(b.opts, usecase.WithSealer(sealer))
	}

	return b, nil
}
