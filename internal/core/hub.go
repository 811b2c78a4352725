package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ServerName is the sender of notices produced by the hub itself.
const ServerName = "SERVER"

// RoomClosingText is delivered to every client when the hub stops.
const RoomClosingText = "The room is closing."

// Hub serializes all access to the shared room on a single goroutine.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	count      chan chan int
	done       chan struct{}

	room *Room
	log  *zerolog.Logger
}

// NewHub creates a new chat hub instance.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		room:       NewRoom(),
		log:        logger,
	}
}

// Run processes hub traffic until ctx is cancelled. On exit every client
// gets a closing notice and its Events channel is closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case c := <-h.register:
			if h.room.AddClient(c) {
				h.log.Debug().Str("client_id", c.ID).Str("room", c.Room).Int("clients", h.room.Len()).Msg("client registered")
			}
		case c := <-h.unregister:
			if h.room.RemoveClient(c) {
				close(c.Events)
				h.log.Debug().Str("client_id", c.ID).Int("clients", h.room.Len()).Msg("client unregistered")
			}
		case msg := <-h.broadcast:
			if dropped := h.room.Broadcast(&Event{Kind: EventRoomMessage, Message: msg}); dropped > 0 {
				h.log.Warn().Int("dropped", dropped).Msg("slow consumers skipped")
			}
		case reply := <-h.count:
			reply <- h.room.Len()
		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

func (h *Hub) shutdown() {
	notice := &Event{
		Kind: EventRoomClosing,
		Message: Message{
			From:      ServerName,
			Text:      RoomClosingText,
			CreatedAt: time.Now(),
		},
	}
	h.log.Info().Int("clients", h.room.Len()).Msg("closing room")
	h.room.Notify(notice)
	for c := range h.room.clients {
		h.room.RemoveClient(c)
		close(c.Events)
	}
}

// RegisterClient adds c to the room. It returns false if the hub has stopped.
func (h *Hub) RegisterClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// UnregisterClient removes c and closes its Events channel.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast delivers msg to every registered client, including the sender.
// It returns false if the hub has stopped.
func (h *Hub) Broadcast(msg Message) bool {
	select {
	case h.broadcast <- msg:
		return true
	case <-h.done:
		return false
	}
}

// Clients returns the number of registered clients, or 0 once stopped.
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// Done is closed after Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
