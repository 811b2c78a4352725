package client

import "errors"

var (
	// ErrInvalidEndpoint is returned when the endpoint cannot be dialled.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrNotOpen is returned by Send when the socket is not open.
	ErrNotOpen = errors.New("socket is not open")
	// ErrAlreadyStarted is returned when Connect is called more than once.
	ErrAlreadyStarted = errors.New("client already started")
)
