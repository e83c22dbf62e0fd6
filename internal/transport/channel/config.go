package channel

import (
	"time"
)

const (
	TransportWebsocket = "websocket"
	TransportPolling   = "polling"
)

type Config struct {
	// BaseURL - адрес сервера, тот же что у REST API (http:// или https://).
	BaseURL string
	// Path - путь endpoint'а Engine.IO, по умолчанию /socket.io/.
	Path string
	// Transports - порядок перебора транспортов при подключении.
	Transports []string

	ReconnectAttempts int
	ReconnectDelay    time.Duration

	// HandshakeTimeout ограничивает ожидание open/connect пакетов.
	HandshakeTimeout time.Duration
}

const (
	defaultPath              = "/socket.io/"
	defaultReconnectAttempts = 5
	defaultReconnectDelay    = time.Second
	defaultHandshakeTimeout  = 20 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = defaultPath
	}
	if len(c.Transports) == 0 {
		c.Transports = []string{TransportWebsocket, TransportPolling}
	}
	if c.ReconnectAttempts < 0 {
		c.ReconnectAttempts = 0
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = defaultReconnectDelay
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}
	return c
}

// DefaultConfig - настройки оригинального клиента: websocket с откатом на polling,
// 5 попыток переподключения раз в секунду.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:           baseURL,
		Path:              defaultPath,
		Transports:        []string{TransportWebsocket, TransportPolling},
		ReconnectAttempts: defaultReconnectAttempts,
		ReconnectDelay:    defaultReconnectDelay,
		HandshakeTimeout:  defaultHandshakeTimeout,
	}
}
