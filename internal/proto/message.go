package proto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedFrame is returned when a frame is not a valid chat message.
var ErrMalformedFrame = errors.New("malformed frame")

// ChatMessage is the only payload exchanged over the socket, in both directions.
type ChatMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

const (
	fieldUsername = "username"
	fieldMessage  = "message"
)

// Decode parses one text frame. The frame must be a JSON object holding
// exactly the string fields username and message. Keys are matched
// case-sensitively and may appear only once.
func Decode(frame []byte) (ChatMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(frame))

	tok, err := dec.Token()
	if err != nil {
		return ChatMessage{}, malformed("%v", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ChatMessage{}, malformed("frame is not an object")
	}

	fields := make(map[string]string, 2)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return ChatMessage{}, malformed("%v", err)
		}
		key, _ := tok.(string)
		if key != fieldUsername && key != fieldMessage {
			return ChatMessage{}, malformed("unexpected field %q", key)
		}
		if _, dup := fields[key]; dup {
			return ChatMessage{}, malformed("duplicate field %q", key)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return ChatMessage{}, malformed("%v", err)
		}
		value, err := decodeString(raw)
		if err != nil {
			return ChatMessage{}, malformed("field %q: %v", key, err)
		}
		fields[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return ChatMessage{}, malformed("%v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ChatMessage{}, malformed("trailing data after object")
	}

	username, ok := fields[fieldUsername]
	if !ok {
		return ChatMessage{}, malformed("username is required")
	}
	message, ok := fields[fieldMessage]
	if !ok {
		return ChatMessage{}, malformed("message is required")
	}

	return ChatMessage{Username: username, Message: message}, nil
}

func decodeString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", errors.New("must be a string")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedFrame}, args...)...)
}

// Encode serializes a message into a single text frame.
func Encode(msg ChatMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode chat message: %w", err)
	}
	return data, nil
}
