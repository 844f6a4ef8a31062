package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidFrame    = errors.New("invalid control frame")
	ErrUnknownAction   = errors.New("unknown action")
)
