// Package socketio - текстовый кодек Engine.IO v4 / Socket.IO v4, ровно в том объеме,
// который нужен клиенту курьера: handshake, ping/pong, события и ошибки подключения.
package socketio

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Protocol - версия Engine.IO в query-параметре EIO.
const Protocol = "4"

// RecordSeparator разделяет пакеты в теле HTTP long-polling запроса.
const RecordSeparator = "\x1e"

type EnginePacketType byte

const (
	EngineOpen    EnginePacketType = '0'
	EngineClose   EnginePacketType = '1'
	EnginePing    EnginePacketType = '2'
	EnginePong    EnginePacketType = '3'
	EngineMessage EnginePacketType = '4'
	EngineUpgrade EnginePacketType = '5'
	EngineNoop    EnginePacketType = '6'
)

func (t EnginePacketType) String() string {
	switch t {
	case EngineOpen:
		return "open"
	case EngineClose:
		return "close"
	case EnginePing:
		return "ping"
	case EnginePong:
		return "pong"
	case EngineMessage:
		return "message"
	case EngineUpgrade:
		return "upgrade"
	case EngineNoop:
		return "noop"
	default:
		return "unknown"
	}
}

type EnginePacket struct {
	Type EnginePacketType
	Data string
}

func (p EnginePacket) Encode() string {
	return string(p.Type) + p.Data
}

func DecodeEngine(raw string) (EnginePacket, error) {
	if raw == "" {
		return EnginePacket{}, ErrEmptyPacket
	}
	if raw[0] == 'b' {
		return EnginePacket{}, ErrBinaryNotSupported
	}

	t := EnginePacketType(raw[0])
	if t < EngineOpen || t > EngineNoop {
		return EnginePacket{}, fmt.Errorf("%w: %q", ErrUnknownPacketType, raw[0])
	}

	return EnginePacket{Type: t, Data: raw[1:]}, nil
}

// Handshake - данные open-пакета.
type Handshake struct {
	SID          string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"`
	PingTimeout  int      `json:"pingTimeout"`
	MaxPayload   int      `json:"maxPayload"`
}

func ParseHandshake(data string) (Handshake, error) {
	var h Handshake
	if err := json.Unmarshal([]byte(data), &h); err != nil {
		return Handshake{}, fmt.Errorf("parse handshake: %w", err)
	}
	if h.SID == "" {
		return Handshake{}, fmt.Errorf("parse handshake: empty sid")
	}
	return h, nil
}

// PingDeadline - сколько ждать следующего ping от сервера, прежде чем считать соединение мертвым.
func (h Handshake) PingDeadline() time.Duration {
	return time.Duration(h.PingInterval+h.PingTimeout) * time.Millisecond
}

// SplitPayload режет тело polling-ответа на отдельные пакеты.
func SplitPayload(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(body, RecordSeparator)
}

func JoinPayload(packets ...string) string {
	return strings.Join(packets, RecordSeparator)
}
