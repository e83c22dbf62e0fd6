package channel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type wsTransport struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func dialWebsocket(ctx context.Context, cfg Config) (transport, error) {
	endpoint, err := endpointURL(cfg, TransportWebsocket, "")
	if err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.HandshakeTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	return &wsTransport{conn: conn}, nil
}

func (t *wsTransport) Name() string {
	return TransportWebsocket
}

func (t *wsTransport) Read(timeout time.Duration) ([]string, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}

	for {
		msgType, data, err := t.conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return nil, fmt.Errorf("%w: %w", ErrTransportClosed, err)
			}
			return nil, err
		}
		// бинарные вложения socket.io клиенту курьера не нужны
		if msgType != websocket.TextMessage {
			continue
		}
		return []string{string(data)}, nil
	}
}

func (t *wsTransport) Write(packets ...string) error {
	t.wmu.Lock()
	defer t.wmu.Unlock()

	for _, p := range packets {
		if err := t.conn.WriteMessage(websocket.TextMessage, []byte(p)); err != nil {
			return fmt.Errorf("websocket write: %w", err)
		}
	}
	return nil
}

func (t *wsTransport) Close() error {
	t.wmu.Lock()
	_ = t.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	t.wmu.Unlock()

	return t.conn.Close()
}
