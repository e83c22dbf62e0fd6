package rider_events

import "encoding/json"

// envelope - событие сервера, переложенное в Kafka как есть.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}
