package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomchat/internal/binding"
	"github.com/vovakirdan/roomchat/internal/client"
	"github.com/vovakirdan/roomchat/internal/config"
	applog "github.com/vovakirdan/roomchat/internal/log"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Join a chat and send each typed line as a message",
	RunE:  runConnect,
}

var (
	flagEndpoint   string
	flagRoom       string
	flagUser       string
	flagTranscript string
)

func init() {
	flags := connectCmd.Flags()
	flags.StringVar(&flagEndpoint, "endpoint", "", "WebSocket endpoint, e.g. ws://localhost:8080/ws")
	flags.StringVar(&flagRoom, "room", "", "optional room name appended to the endpoint path")
	flags.StringVar(&flagUser, "user", "", "username to send messages as")
	flags.StringVar(&flagTranscript, "transcript", "", "optional HTML file to append the conversation to")
}

func runConnect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.Config{
		Client: config.ClientConfig{
			Endpoint: flagEndpoint,
			Room:     flagRoom,
			Username: flagUser,
		},
	})
	if err != nil {
		return err
	}
	logger := applog.New(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outputs := binding.Multi{binding.NewWriter(os.Stdout)}
	if flagTranscript != "" {
		f, err := os.OpenFile(flagTranscript, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		outputs = append(outputs, binding.NewHTMLTranscript(f))
	}

	input := binding.NewField("")
	c, err := client.New(client.Options{
		Endpoint:    cfg.Client.Endpoint,
		Room:        cfg.Client.Room,
		Username:    client.StaticUsername(cfg.Client.Username),
		Input:       input,
		Output:      outputs,
		Logger:      logger,
		DialTimeout: cfg.Client.DialTimeout,
		ReadLimit:   cfg.Client.MaxMessageBytes,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Connect(ctx); err != nil {
		return err
	}
	logger.Info().Str("user", cfg.Client.Username).Msg("type messages and press Enter to send, Ctrl+C to exit")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	listenErr := make(chan error, 1)
	go func() {
		defer cancel()
		listenErr <- c.Listen(ctx)
	}()

	if err := binding.Submit(ctx, os.Stdin, input, c.Send); err != nil && !errors.Is(err, client.ErrNotOpen) {
		return err
	}

	_ = c.Close()
	cancel()
	return <-listenErr
}
