package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomchat/internal/config"
	"github.com/vovakirdan/roomchat/internal/core"
	"github.com/vovakirdan/roomchat/internal/proto"
)

var errHubClosed = errors.New("hub closed")

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	hub               *core.Hub
	log               *zerolog.Logger
	maxMessageBytes   int64
	clientBuffer      int
	messagesPerMinute int
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, cfg *config.ServerConfig, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub:               hub,
		log:               logger,
		maxMessageBytes:   cfg.MaxMessageBytes,
		clientBuffer:      cfg.ClientBuffer,
		messagesPerMinute: cfg.MessagesPerMinute,
	}
}

// Handle serves /ws and /ws/:room.
func (h *WSHandler) Handle(c *gin.Context) {
	h.serve(c.Writer, c.Request, c.Param("room"))
}

func (h *WSHandler) serve(w stdhttp.ResponseWriter, r *stdhttp.Request, room string) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	client := core.NewClient(room, h.clientBuffer)
	if !h.hub.RegisterClient(client) {
		conn.Close(websocket.StatusGoingAway, "server shutdown")
		return
	}
	defer h.hub.UnregisterClient(client)

	log := h.log.With().Str("client_id", client.ID).Str("room", room).Logger()
	log.Debug().Msg("ws connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client, &log)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client, &log)
	}()

	err = <-errCh
	if errors.Is(err, errHubClosed) {
		// Close first: cancelling a pending read closes with policy violation.
		conn.Close(websocket.StatusGoingAway, "server shutdown")
		cancel()
		<-errCh
		return
	}
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client, log *zerolog.Logger) error {
	limiter := newRateLimiter(h.messagesPerMinute)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			log.Warn().Msg("dropping binary frame")
			continue
		}

		inbound, err := proto.Decode(data)
		if err != nil {
			log.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}
		if !limiter.allow() {
			log.Warn().Msg("rate limit exceeded, dropping frame")
			continue
		}

		if !h.hub.Broadcast(inboundToMessage(client, inbound)) {
			return errHubClosed
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client, log *zerolog.Logger) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return errHubClosed
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				log.Error().Err(err).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
