package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ridersync/internal/pkg/socketio"
	"ridersync/pkg/logger"
)

// Причины отключения в терминах socket.io клиента.
const (
	reasonServerDisconnect = "io server disconnect"
	reasonClientDisconnect = "io client disconnect"
	reasonTransportClose   = "transport close"
	reasonTransportError   = "transport error"
	reasonPingTimeout      = "ping timeout"
)

// session - одно установленное подключение: transport + handshake Engine.IO + connect Socket.IO.
type session struct {
	transport transport
	handshake socketio.Handshake
	sid       string
	// backlog - пакеты, пришедшие в одной пачке с handshake (polling), ждут обработки в serve.
	backlog []string
}

func (s *session) next(timeout time.Duration) ([]string, error) {
	if len(s.backlog) > 0 {
		packets := s.backlog
		s.backlog = nil
		return packets, nil
	}
	return s.transport.Read(timeout)
}

// openSession выполняет handshake поверх свежего транспорта: ждет open-пакет, шлет "40",
// ждет подтверждение или connect_error.
func openSession(t transport, handshakeTimeout time.Duration) (*session, error) {
	s := &session{transport: t}

	if err := s.awaitOpen(handshakeTimeout); err != nil {
		return nil, err
	}

	if err := t.Write(socketio.ConnectPacket()); err != nil {
		return nil, fmt.Errorf("send connect: %w", err)
	}

	if err := s.awaitConnect(handshakeTimeout); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *session) awaitOpen(timeout time.Duration) error {
	packets, err := s.next(timeout)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if len(packets) == 0 {
		return fmt.Errorf("%w: no open packet", ErrHandshake)
	}

	open, err := socketio.DecodeEngine(packets[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if open.Type != socketio.EngineOpen {
		return fmt.Errorf("%w: expected open packet, got %s", ErrHandshake, open.Type)
	}

	h, err := socketio.ParseHandshake(open.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	s.handshake = h
	s.backlog = packets[1:]

	return nil
}

func (s *session) awaitConnect(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%w: connect acknowledgement timeout", ErrHandshake)
		}

		packets, err := s.next(remaining)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrHandshake, err)
		}

		for i, raw := range packets {
			p, err := socketio.DecodeEngine(raw)
			if err != nil {
				continue
			}

			switch p.Type {
			case socketio.EnginePing:
				if err := s.transport.Write(socketio.EnginePacket{Type: socketio.EnginePong}.Encode()); err != nil {
					return fmt.Errorf("send pong: %w", err)
				}
			case socketio.EngineClose:
				return fmt.Errorf("%w: closed during connect", ErrHandshake)
			case socketio.EngineMessage:
				sp, err := socketio.DecodeSocket(p.Data)
				if err != nil {
					continue
				}
				switch sp.Type {
				case socketio.SocketConnect:
					s.sid = connectSID(sp)
					s.backlog = packets[i+1:]
					return nil
				case socketio.SocketConnectError:
					return fmt.Errorf("%w: %s", ErrConnectRejected, socketio.ConnectErrorMessage(sp.Data))
				}
			}
		}
	}
}

func connectSID(p socketio.SocketPacket) string {
	var body struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(p.Data, &body); err != nil {
		return ""
	}
	return body.SID
}

// serve читает пакеты до разрыва и возвращает причину отключения.
// События сервера отдаются в publisher по одному в порядке прихода.
func (s *session) serve(ctx context.Context, log handlerLogger, publisher Publisher) string {
	stop := context.AfterFunc(ctx, func() {
		_ = s.transport.Close()
	})
	defer stop()

	pingDeadline := s.handshake.PingDeadline()
	if pingDeadline <= 0 {
		pingDeadline = defaultHandshakeTimeout
	}
	transportName := s.transport.Name()

	for {
		packets, err := s.next(pingDeadline)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				return reasonClientDisconnect
			case errors.Is(err, ErrTransportClosed):
				return reasonTransportClose
			case isTimeout(err):
				return reasonPingTimeout
			default:
				log.Warn("channel read failed",
					logger.NewField("transport", transportName),
					logger.NewField("error", err),
				)
				return reasonTransportError
			}
		}

		for _, raw := range packets {
			p, err := socketio.DecodeEngine(raw)
			if err != nil {
				log.Debug("skipping undecodable packet",
					logger.NewField("transport", transportName),
					logger.NewField("error", err),
				)
				continue
			}
			PacketsTotal.WithLabelValues(transportName, p.Type.String()).Inc()

			switch p.Type {
			case socketio.EnginePing:
				if err := s.transport.Write(socketio.EnginePacket{Type: socketio.EnginePong}.Encode()); err != nil {
					log.Warn("failed to answer ping", logger.NewField("error", err))
					return reasonTransportError
				}
			case socketio.EngineClose:
				return reasonTransportClose
			case socketio.EngineMessage:
				if reason, done := s.handleMessage(ctx, log, publisher, p.Data); done {
					return reason
				}
			}
		}
	}
}

func (s *session) handleMessage(ctx context.Context, log handlerLogger, publisher Publisher, data string) (string, bool) {
	p, err := socketio.DecodeSocket(data)
	if err != nil {
		log.Debug("skipping malformed socket.io packet", logger.NewField("error", err))
		return "", false
	}

	switch p.Type {
	case socketio.SocketDisconnect:
		return reasonServerDisconnect, true
	case socketio.SocketEvent:
		// невалидные события Publisher логирует и считает сам
		if err := publisher.Publish(ctx, p.Event, p.Payload); err != nil && ctx.Err() != nil {
			return reasonClientDisconnect, true
		}
	}
	return "", false
}

func (s *session) close() {
	_ = s.transport.Close()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
