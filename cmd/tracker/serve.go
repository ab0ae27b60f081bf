package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/expenses-tracker/internal/adapter/http"
	"github.com/iho/expenses-tracker/internal/adapter/http/handler"
	"github.com/iho/expenses-tracker/internal/adapter/http/middleware"
	"github.com/iho/expenses-tracker/internal/usecase"
)

const limiterIdleTimeout = 10 * time.Minute

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and autosave until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if addr != "" {
					a.cfg.HTTPAddr = addr
				}
				return serve(cmd.Context(), a)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides HTTP_ADDR")

	return cmd
}

// serve runs the HTTP server and the autosaver until ctx is cancelled. The autosaver
// writes a final checkpoint after the server has stopped accepting requests.
func serve(ctx context.Context, a *app) error {
	routerCfg := httpAdapter.RouterConfig{
		TrackerHandler: handler.NewTrackerHandler(a.tracker, a.logger),
		HealthHandler:  handler.NewHealthHandler(a.tracker, a.cfg.StateBackend),
		Logger:         a.logger.With().Str("component", "http").Logger(),
		Registry:       a.registry,
	}
	if a.cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst)
	}

	server := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  a.cfg.HTTPReadTimeout,
		WriteTimeout: a.cfg.HTTPWriteTimeout,
	}

	autosaver := usecase.NewAutosaver(usecase.AutosaverConfig{
		Saver:       a.tracker,
		Interval:    a.cfg.AutosaveInterval,
		SaveTimeout: a.cfg.SaveTimeout,
		Logger:      a.logger.With().Str("component", "autosaver").Logger(),
	})

	g, gctx := errgroup.WithContext(ctx)
	serverDone := make(chan struct{})

	g.Go(func() error {
		a.logger.Info().Str("addr", server.Addr).Str("backend", a.cfg.StateBackend).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutting down server...")
		return drainServer(context.WithoutCancel(gctx), server, a.cfg.HTTPShutdownTimeout, serverDone)
	})

	g.Go(func() error {
		saverCtx, cancel := context.WithCancel(context.WithoutCancel(gctx))
		defer cancel()
		go func() {
			<-gctx.Done()
			<-serverDone
			cancel()
		}()
		return autosaver.Start(saverCtx)
	})

	if routerCfg.RateLimiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(limiterIdleTimeout)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					routerCfg.RateLimiter.Prune(limiterIdleTimeout)
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error().Err(err).Msg("server stopped with error")
		return err
	}

	a.logger.Info().Msg("server stopped")
	return nil
}

// drainServer stops server and closes done once in-flight requests have
// finished or timeout has passed.
func drainServer(ctx context.Context, server *http.Server, timeout time.Duration, done chan<- struct{}) error {
	defer close(done)
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
