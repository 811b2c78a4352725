// Package client implements the chat client: one WebSocket connection wired
// to an input field and an output surface.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomchat/internal/binding"
	"github.com/vovakirdan/roomchat/internal/proto"
)

const (
	// StatusConnected is appended to the output once the socket opens.
	StatusConnected = "Status: Connected"

	defaultDialTimeout = 10 * time.Second
)

// Options configures a Client.
type Options struct {
	// Endpoint is the WebSocket URL, e.g. ws://localhost:8080/ws.
	Endpoint string
	// Room, when set, is appended to Endpoint as a path segment.
	Room string
	// Username is asked for the sender name on every send.
	Username func() string
	Input    binding.Input
	Output   binding.Output
	Logger   *zerolog.Logger

	DialTimeout time.Duration
	// ReadLimit caps the size of an incoming frame. Zero keeps the websocket default.
	ReadLimit int64

	// OnFrameError is called for every frame that fails to decode.
	OnFrameError func(error)
	// OnStateChange is called after every state transition.
	OnStateChange func(from, to State)
}

// StaticUsername returns a provider that always yields name.
func StaticUsername(name string) func() string {
	return func() string { return name }
}

// Client owns a single WebSocket connection. It never reconnects: once the
// socket is closed or failed a new Client has to be built.
type Client struct {
	endpoint string
	opts     Options
	log      *zerolog.Logger

	mu    sync.Mutex
	state State
	conn  *websocket.Conn
}

// New validates opts and derives the target URL. It does not dial.
func New(opts Options) (*Client, error) {
	if opts.Username == nil {
		return nil, errors.New("username provider is required")
	}
	if opts.Input == nil {
		return nil, errors.New("input binding is required")
	}
	if opts.Output == nil {
		return nil, errors.New("output binding is required")
	}

	endpoint, err := BuildEndpoint(opts.Endpoint, opts.Room)
	if err != nil {
		return nil, err
	}

	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	scoped := logger.With().Str("endpoint", endpoint).Logger()

	return &Client{
		endpoint: endpoint,
		opts:     opts,
		log:      &scoped,
	}, nil
}

// Endpoint returns the URL derived in New. It never changes.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run connects and then listens until the socket closes or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Listen(ctx)
}

// Connect dials the endpoint. On success the connected status line is
// appended to the output before any frame is read.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	from := c.setStateLocked(StateConnecting)
	c.mu.Unlock()
	c.notify(from, StateConnecting)

	c.log.Debug().Msg("dialing")

	dialCtx, cancel := context.WithTimeout(ctx, c.opts.DialTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, c.endpoint, nil)
	if err != nil {
		c.transition(StateFailed)
		c.log.Error().Err(err).Msg("dial failed")
		return fmt.Errorf("dial %s: %w", c.endpoint, err)
	}
	if c.opts.ReadLimit > 0 {
		conn.SetReadLimit(c.opts.ReadLimit)
	}

	c.mu.Lock()
	if c.state != StateConnecting {
		// Closed while the handshake was in flight.
		c.mu.Unlock()
		_ = conn.Close(websocket.StatusNormalClosure, "bye")
		return ErrNotOpen
	}
	c.conn = conn
	c.mu.Unlock()

	c.emit(binding.Line{Kind: binding.LineStatus, Text: StatusConnected})
	if !c.transition(StateOpen) {
		_ = conn.Close(websocket.StatusNormalClosure, "bye")
		return ErrNotOpen
	}

	c.log.Info().Msg("connected")
	return nil
}

// Listen reads frames until the socket closes. Valid frames are rendered as
// chat lines; malformed ones are reported and skipped. It returns nil when
// the socket closes normally or ctx is cancelled.
func (c *Client) Listen(ctx context.Context) error {
	conn, ok := c.openConn()
	if !ok {
		return ErrNotOpen
	}

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return c.finish(ctx, err)
		}
		if typ != websocket.MessageText {
			c.frameError(fmt.Errorf("%w: unexpected %v frame", proto.ErrMalformedFrame, typ))
			continue
		}

		msg, err := proto.Decode(data)
		if err != nil {
			c.frameError(err)
			continue
		}
		c.emit(binding.Line{Kind: binding.LineChat, Text: Render(msg)})
	}
}

// Send builds a message from the username provider and the current input
// value, writes it as one frame and clears the input. Nothing is queued: if
// the socket is not open ErrNotOpen is returned and the input is kept.
func (c *Client) Send(ctx context.Context) error {
	conn, ok := c.openConn()
	if !ok {
		return ErrNotOpen
	}

	msg := proto.ChatMessage{
		Username: c.opts.Username(),
		Message:  c.opts.Input.Value(),
	}
	data, err := proto.Encode(msg)
	if err != nil {
		return err
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		c.log.Warn().Err(err).Msg("send failed")
		return fmt.Errorf("send: %w", err)
	}

	c.opts.Input.Clear()
	return nil
}

// Close closes the socket with a normal closure status.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	from := c.state
	if from.Terminal() {
		c.mu.Unlock()
		return nil
	}
	c.setStateLocked(StateClosed)
	c.mu.Unlock()
	c.notify(from, StateClosed)

	if conn == nil {
		return nil
	}
	if err := conn.Close(websocket.StatusNormalClosure, "bye"); err != nil && websocket.CloseStatus(err) == -1 {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Render formats a message the way it is shown to the user.
func Render(msg proto.ChatMessage) string {
	return msg.Username + ": " + msg.Message
}

func (c *Client) finish(ctx context.Context, err error) error {
	if c.State().Terminal() {
		return nil
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		c.transition(StateClosed)
		return nil
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		c.log.Info().Msg("connection closed by peer")
		c.transition(StateClosed)
		return nil
	}

	c.log.Warn().Err(err).Msg("connection failed")
	c.transition(StateFailed)
	return fmt.Errorf("read: %w", err)
}

func (c *Client) frameError(err error) {
	c.log.Warn().Err(err).Msg("dropping frame")
	c.emit(binding.Line{Kind: binding.LineError, Text: "Error: " + err.Error()})
	if c.opts.OnFrameError != nil {
		c.opts.OnFrameError(err)
	}
}

func (c *Client) emit(line binding.Line) {
	if err := c.opts.Output.Append(line); err != nil {
		c.log.Warn().Err(err).Str("kind", line.Kind.String()).Msg("output append failed")
	}
}

func (c *Client) openConn() (*websocket.Conn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateOpen || c.conn == nil {
		return nil, false
	}
	return c.conn, true
}

// transition moves to the next state if allowed and fires the hook.
func (c *Client) transition(to State) bool {
	c.mu.Lock()
	if !CanTransition(c.state, to) {
		c.mu.Unlock()
		return false
	}
	from := c.setStateLocked(to)
	c.mu.Unlock()
	c.notify(from, to)
	return true
}

func (c *Client) setStateLocked(to State) State {
	from := c.state
	c.state = to
	return from
}

func (c *Client) notify(from, to State) {
	c.log.Debug().Str("from", from.String()).Str("to", to.String()).Msg("state change")
	if c.opts.OnStateChange != nil {
		c.opts.OnStateChange(from, to)
	}
}
