package core

// Room groups the clients that receive each other's messages.
type Room struct {
	clients map[*Client]struct{}
}

// NewRoom constructs a room with no clients.
func NewRoom() *Room {
	return &Room{
		clients: make(map[*Client]struct{}),
	}
}

// AddClient inserts a client into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast sends an event to all clients in the room and returns how many
// clients it was dropped for.
func (r *Room) Broadcast(event *Event) int {
	dropped := 0
	for client := range r.clients {
		select {
		case client.Events <- event:
		default:
			// Drop if slow consumer.
			dropped++
		}
	}
	return dropped
}

// Notify delivers event to every client even when its buffer is full, in
// which case the oldest queued event is discarded. Only the hub goroutine
// sends on Events, so the freed slot cannot be taken by another sender.
func (r *Room) Notify(event *Event) {
	for client := range r.clients {
		select {
		case client.Events <- event:
			continue
		default:
		}
		select {
		case <-client.Events:
		default:
		}
		client.Events <- event
	}
}

// Len returns the number of clients in the room.
func (r *Room) Len() int {
	return len(r.clients)
}
