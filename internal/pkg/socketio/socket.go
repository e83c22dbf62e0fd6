package socketio

import (
	"encoding/json"
	"fmt"
	"strings"
)

type SocketPacketType byte

const (
	SocketConnect      SocketPacketType = '0'
	SocketDisconnect   SocketPacketType = '1'
	SocketEvent        SocketPacketType = '2'
	SocketAck          SocketPacketType = '3'
	SocketConnectError SocketPacketType = '4'
)

// DefaultNamespace опускается при кодировании.
const DefaultNamespace = "/"

// SocketPacket - пакет Socket.IO, вложенный в engine message.
type SocketPacket struct {
	Type      SocketPacketType
	Namespace string
	// Event и Payload заполнены только для SocketEvent. Payload - первый аргумент события.
	Event   string
	Payload json.RawMessage
	// Data - тело connect / connect_error.
	Data json.RawMessage
}

func DecodeSocket(raw string) (SocketPacket, error) {
	if raw == "" {
		return SocketPacket{}, ErrEmptyPacket
	}

	p := SocketPacket{Type: SocketPacketType(raw[0]), Namespace: DefaultNamespace}
	if p.Type < SocketConnect || p.Type > SocketConnectError {
		return SocketPacket{}, fmt.Errorf("%w: %q", ErrUnknownPacketType, raw[0])
	}

	rest := raw[1:]
	if strings.HasPrefix(rest, "/") {
		idx := strings.IndexByte(rest, ',')
		if idx < 0 {
			p.Namespace = rest
			return p, nil
		}
		p.Namespace = rest[:idx]
		rest = rest[idx+1:]
	}

	// ack id нам не нужен, пропускаем
	rest = strings.TrimLeft(rest, "0123456789")

	switch p.Type {
	case SocketEvent:
		name, payload, err := decodeEventArgs(rest)
		if err != nil {
			return SocketPacket{}, err
		}
		p.Event = name
		p.Payload = payload
	default:
		if rest != "" {
			p.Data = json.RawMessage(rest)
		}
	}

	return p, nil
}

func decodeEventArgs(raw string) (string, json.RawMessage, error) {
	var args []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("%w: no event name", ErrMalformedEvent)
	}

	var name string
	if err := json.Unmarshal(args[0], &name); err != nil {
		return "", nil, fmt.Errorf("%w: event name is not a string", ErrMalformedEvent)
	}

	if len(args) == 1 {
		return name, nil, nil
	}
	return name, args[1], nil
}

func (p SocketPacket) Encode() (string, error) {
	var b strings.Builder
	b.WriteByte(byte(p.Type))
	if p.Namespace != "" && p.Namespace != DefaultNamespace {
		b.WriteString(p.Namespace)
		b.WriteByte(',')
	}

	switch p.Type {
	case SocketEvent:
		args := []any{p.Event}
		if len(p.Payload) > 0 {
			args = append(args, p.Payload)
		}
		data, err := json.Marshal(args)
		if err != nil {
			return "", fmt.Errorf("encode event %q: %w", p.Event, err)
		}
		b.Write(data)
	default:
		b.Write(p.Data)
	}

	return b.String(), nil
}

// Message оборачивает socket-пакет в engine message: "4" + пакет.
func Message(p SocketPacket) (string, error) {
	encoded, err := p.Encode()
	if err != nil {
		return "", err
	}
	return EnginePacket{Type: EngineMessage, Data: encoded}.Encode(), nil
}

// ConnectPacket - запрос подключения к пространству имен по умолчанию, "40".
func ConnectPacket() string {
	msg, _ := Message(SocketPacket{Type: SocketConnect})
	return msg
}

// EventPacket собирает "42[\"name\",payload]".
func EventPacket(name string, payload any) (string, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("encode payload: %w", err)
		}
		raw = data
	}
	return Message(SocketPacket{Type: SocketEvent, Event: name, Payload: raw})
}

// ConnectErrorMessage достает message из тела connect_error, если оно есть.
func ConnectErrorMessage(data json.RawMessage) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return string(data)
}
