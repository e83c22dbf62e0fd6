package session

import "time"

type SessionDB struct {
	RiderID    string
	Token      string
	SignedInAt time.Time
}
