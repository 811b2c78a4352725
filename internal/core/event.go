package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomMessage carries a chat message to every client.
	EventRoomMessage EventKind = iota
	// EventRoomClosing is the last event a client receives before its
	// channel is closed on shutdown.
	EventRoomClosing
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Message Message
}
