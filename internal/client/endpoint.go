package client

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildEndpoint derives the WebSocket URL from a base endpoint and an
// optional room name, which is appended as the last path segment.
func BuildEndpoint(base, room string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", fmt.Errorf("%w: endpoint is required", ErrInvalidEndpoint)
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}

	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: host is required", ErrInvalidEndpoint)
	}

	if room != "" {
		// Escape the room so it always stays a single segment.
		escaped := strings.TrimRight(u.EscapedPath(), "/")
		u.Path = strings.TrimRight(u.Path, "/") + "/" + room
		u.RawPath = escaped + "/" + url.PathEscape(room)
	}
	return u.String(), nil
}
