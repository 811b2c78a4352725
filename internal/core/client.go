package core

import "github.com/google/uuid"

const defaultEventBuffer = 16

// Client is a connected socket as seen by the core layer.
type Client struct {
	ID string
	// Room is the path segment the client connected with. All rooms share
	// one broadcast set; it is kept for logging.
	Room   string
	Events chan *Event
}

// NewClient constructs a client with an event buffer of the given size.
func NewClient(room string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &Client{
		ID:     uuid.NewString(),
		Room:   room,
		Events: make(chan *Event, buffer),
	}
}
