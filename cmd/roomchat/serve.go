package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomchat/internal/app"
	"github.com/vovakirdan/roomchat/internal/config"
	applog "github.com/vovakirdan/roomchat/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a relay that broadcasts every chat frame to all connected clients",
	RunE:  runServe,
}

var flagAddr string

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.Config{
		Server: config.ServerConfig{Addr: flagAddr},
	})
	if err != nil {
		return err
	}
	logger := applog.New(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("addr", cfg.Server.Addr).Msg("starting roomchat relay")
	if err := app.New(&cfg.Server, logger).Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("relay stopped")
	return nil
}
