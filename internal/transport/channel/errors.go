package channel

import "errors"

var (
	ErrReconnectExhausted = errors.New("reconnect attempts exhausted")
	ErrNoTransports       = errors.New("no transports configured")
	ErrUnknownTransport   = errors.New("unknown transport")
	ErrHandshake          = errors.New("engine.io handshake failed")
	ErrConnectRejected    = errors.New("socket.io connect rejected")
	ErrPingTimeout        = errors.New("ping timeout")
	ErrTransportClosed    = errors.New("transport closed")
)
