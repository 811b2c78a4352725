package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomchat/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "roomchat",
	Short:         "Minimal WebSocket chat client and relay",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfigPath string
	flagLogLevel   string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfigPath, "config", "", "config file path (default: user config dir or ROOMCHAT_CONFIG_DEFAULT_PATH)")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(connectCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("roomchat")
	}
}

// loadConfig resolves the config file and env, then applies overrides.
func loadConfig(overrides config.Config) (config.Config, error) {
	cfg, _, err := config.Load(nil, flagConfigPath)
	if err != nil {
		return cfg, err
	}
	overrides.LogLevel = flagLogLevel
	cfg.UpdateFrom(overrides)
	return cfg, nil
}
