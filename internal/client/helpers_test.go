package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/vovakirdan/roomchat/internal/binding"
)

// peer is the server side of a single test connection. Frames received from
// the client are echoed back; frames put on push are written verbatim.
type peer struct {
	paths chan string
	push  chan []byte
	close chan websocket.StatusCode
}

func startPeer(t *testing.T) (*httptest.Server, *peer) {
	t.Helper()

	p := &peer{
		paths: make(chan string, 1),
		push:  make(chan []byte, 8),
		close: make(chan websocket.StatusCode, 1),
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()
		p.paths <- r.URL.EscapedPath()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go func() {
			defer cancel()
			for {
				typ, data, err := conn.Read(ctx)
				if err != nil {
					return
				}
				if err := conn.Write(ctx, typ, data); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case frame := <-p.push:
				if err := conn.Write(ctx, websocket.MessageText, frame); err != nil {
					return
				}
			case code := <-p.close:
				_ = conn.Close(code, "test closing")
				return
			case <-ctx.Done():
				return
			}
		}
	}))
	t.Cleanup(ts.Close)

	return ts, p
}

func wsURL(ts *httptest.Server, path string) string {
	return strings.Replace(ts.URL, "http", "ws", 1) + path
}

func newTestClient(t *testing.T, endpoint, room string, input binding.Input, output binding.Output) *Client {
	t.Helper()

	c, err := New(Options{
		Endpoint:    endpoint,
		Room:        room,
		Username:    StaticUsername("alice"),
		Input:       input,
		Output:      output,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// waitForLines polls buf until it holds at least n lines.
func waitForLines(t *testing.T, buf *binding.Buffer, n int) []binding.Line {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if lines := buf.Lines(); len(lines) >= n {
			return lines
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d lines, got %+v", n, buf.Lines())
	return nil
}

func waitForState(t *testing.T, c *Client, want State) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected state %v, got %v", want, c.State())
}
