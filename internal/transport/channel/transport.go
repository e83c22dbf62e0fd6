package channel

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ridersync/internal/pkg/socketio"
)

// transport - одно физическое соединение Engine.IO.
type transport interface {
	Name() string
	// Read ждет следующую порцию пакетов не дольше timeout.
	Read(timeout time.Duration) ([]string, error)
	Write(packets ...string) error
	Close() error
}

type dialFunc func(ctx context.Context, cfg Config) (transport, error)

func dialerFor(name string) (dialFunc, error) {
	switch name {
	case TransportWebsocket:
		return dialWebsocket, nil
	case TransportPolling:
		return dialPolling, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, name)
	}
}

// endpointURL собирает адрес Engine.IO для указанного транспорта.
func endpointURL(cfg Config, transportName, sid string) (string, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	if transportName == TransportWebsocket {
		switch u.Scheme {
		case "https":
			u.Scheme = "wss"
		case "http":
			u.Scheme = "ws"
		}
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Trim(cfg.Path, "/") + "/"

	q := url.Values{}
	q.Set("EIO", socketio.Protocol)
	q.Set("transport", transportName)
	if sid != "" {
		q.Set("sid", sid)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
