package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vovakirdan/roomchat/internal/binding"
	"github.com/vovakirdan/roomchat/internal/client"
	"github.com/vovakirdan/roomchat/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "tester", "username to send as")
	room := flag.String("room", "", "optional room segment")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	out := binding.NewBuffer()
	c, err := client.New(client.Options{
		Endpoint: *addr,
		Room:     *room,
		Username: client.StaticUsername(*user),
		Input:    binding.NewField(*text),
		Output:   out,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Connect(ctx); err != nil {
		return err
	}
	go func() { _ = c.Listen(ctx) }()

	if err := c.Send(ctx); err != nil {
		return err
	}

	want := client.Render(proto.ChatMessage{Username: *user, Message: *text})
	seen := 0
	for {
		lines := out.Lines()
		for _, line := range lines[seen:] {
			fmt.Printf("%s: %s\n", line.Kind, line.Text)
			if line.Kind == binding.LineChat && line.Text == want {
				return nil
			}
		}
		seen = len(lines)
		select {
		case <-ctx.Done():
			return errors.New("echo not received before timeout")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
