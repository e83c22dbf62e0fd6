package events

import "errors"

var (
	ErrUnknownEvent   = errors.New("unknown event")
	ErrInvalidPayload = errors.New("invalid event payload")
	ErrRegistryClosed = errors.New("registry is not running")
)
