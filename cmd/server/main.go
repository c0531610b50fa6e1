package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/huddlechat/huddle-server/internal/app"
	"github.com/huddlechat/huddle-server/internal/config"
	"github.com/huddlechat/huddle-server/internal/log"
)

func main() {
	var (
		configPath string
		overrides  config.Config
	)

	root := &cobra.Command{
		Use:   "huddle-server",
		Short: "Room-scoped ephemeral chat server",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootLogger := log.New("info")

			cfg, path, err := config.Load(bootLogger, configPath)
			if err != nil {
				return err
			}

			// Flags win over file and environment.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = overrides.Addr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = overrides.LogLevel
			}
			if cmd.Flags().Changed("history-path") {
				cfg.HistoryPath = overrides.HistoryPath
			}

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Str("addr", cfg.Addr).Msg("starting huddle server")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(&cfg, logger)
			if err != nil {
				return err
			}

			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	defaults := config.Default()
	root.Flags().StringVar(&configPath, "config", "", "path to config file")
	root.Flags().StringVar(&overrides.Addr, "addr", defaults.Addr, "HTTP listen address")
	root.Flags().StringVar(&overrides.LogLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().StringVar(&overrides.HistoryPath, "history-path", defaults.HistoryPath, "sqlite file for message history (empty disables)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
