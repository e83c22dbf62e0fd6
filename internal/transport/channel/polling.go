package channel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"ridersync/internal/pkg/socketio"
)

const pollingCloseTimeout = time.Second

// pollingTransport - HTTP long-polling Engine.IO. Сам держит sid: первый GET возвращает open-пакет,
// дальше все запросы идут с ним.
type pollingTransport struct {
	cfg    Config
	client *http.Client

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	sid     string
	pending []string
}

func dialPolling(ctx context.Context, cfg Config) (transport, error) {
	tctx, cancel := context.WithCancel(context.Background())
	t := &pollingTransport{
		cfg:    cfg,
		client: &http.Client{},
		ctx:    tctx,
		cancel: cancel,
	}

	hctx, hcancel := context.WithTimeout(ctx, cfg.HandshakeTimeout)
	defer hcancel()

	packets, err := t.get(hctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("polling handshake: %w", err)
	}
	if len(packets) == 0 {
		cancel()
		return nil, fmt.Errorf("%w: empty polling handshake", ErrHandshake)
	}

	open, err := socketio.DecodeEngine(packets[0])
	if err != nil || open.Type != socketio.EngineOpen {
		cancel()
		return nil, fmt.Errorf("%w: first polling packet is not open", ErrHandshake)
	}
	handshake, err := socketio.ParseHandshake(open.Data)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}

	t.sid = handshake.SID
	t.pending = packets

	return t, nil
}

func (t *pollingTransport) Name() string {
	return TransportPolling
}

func (t *pollingTransport) Read(timeout time.Duration) ([]string, error) {
	t.mu.Lock()
	if len(t.pending) > 0 {
		packets := t.pending
		t.pending = nil
		t.mu.Unlock()
		return packets, nil
	}
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(t.ctx, timeout)
	defer cancel()

	return t.get(ctx)
}

func (t *pollingTransport) Write(packets ...string) error {
	ctx, cancel := context.WithTimeout(t.ctx, t.cfg.HandshakeTimeout)
	defer cancel()

	return t.post(ctx, packets...)
}

func (t *pollingTransport) post(ctx context.Context, packets ...string) error {
	endpoint, err := endpointURL(t.cfg, TransportPolling, t.sid)
	if err != nil {
		return err
	}

	body := socketio.JoinPayload(packets...)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("create polling request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("polling write: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("polling write: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (t *pollingTransport) Close() error {
	// close-пакет отправляем без гарантий, сервер все равно закроет сессию по ping timeout
	ctx, cancel := context.WithTimeout(context.Background(), pollingCloseTimeout)
	defer cancel()
	_ = t.post(ctx, socketio.EnginePacket{Type: socketio.EngineClose}.Encode())

	t.cancel()
	return nil
}

func (t *pollingTransport) get(ctx context.Context) ([]string, error) {
	endpoint, err := endpointURL(t.cfg, TransportPolling, t.sid)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polling read: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("polling read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("polling read: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return socketio.SplitPayload(string(data)), nil
}
