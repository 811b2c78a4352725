package http

import (
	"time"

	"github.com/vovakirdan/roomchat/internal/core"
	"github.com/vovakirdan/roomchat/internal/proto"
)

func inboundToMessage(client *core.Client, inbound proto.ChatMessage) core.Message {
	return core.Message{
		Room:      client.Room,
		From:      core.SanitizeName(inbound.Username),
		Text:      inbound.Message,
		CreatedAt: time.Now(),
	}
}

func outboundFromEvent(event *core.Event) proto.ChatMessage {
	return proto.ChatMessage{
		Username: event.Message.From,
		Message:  event.Message.Text,
	}
}
