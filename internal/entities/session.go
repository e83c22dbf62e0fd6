package entities

import "time"

// Session - вход курьера, переживает перезапуск процесса.
type Session struct {
	RiderID    string
	Token      string
	SignedInAt time.Time
}
