package socketio

import "errors"

var (
	ErrEmptyPacket        = errors.New("empty packet")
	ErrUnknownPacketType  = errors.New("unknown packet type")
	ErrBinaryNotSupported = errors.New("binary packets are not supported")
	ErrMalformedEvent     = errors.New("malformed event packet")
)
