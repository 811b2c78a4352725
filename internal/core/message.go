package core

import "time"

// Message is the domain model for a relayed chat message.
type Message struct {
	Room      string
	From      string
	Text      string
	CreatedAt time.Time
}
