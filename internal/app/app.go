package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/huddlechat/huddle-server/internal/config"
	"github.com/huddlechat/huddle-server/internal/core"
	"github.com/huddlechat/huddle-server/internal/store"
	"github.com/huddlechat/huddle-server/internal/store/sqlite"
	transporthttp "github.com/huddlechat/huddle-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	history         store.HistoryStore
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	var history store.HistoryStore
	if cfg.HistoryPath != "" {
		st, err := sqlite.New(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("init history store: %w", err)
		}
		history = st
		logger.Info().Str("history_path", cfg.HistoryPath).Msg("history store initialized")
	} else {
		logger.Info().Msg("history persistence disabled")
	}

	hub := core.NewHub(history, logger)
	server := transporthttp.NewServer(hub, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		history:         history,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the history store and other resources.
func (a *App) cleanup() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close history store")
		} else {
			a.log.Info().Msg("history store closed")
		}
	}
}
