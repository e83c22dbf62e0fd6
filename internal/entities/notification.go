package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type NotificationKind string

const (
	NotificationAssigned       NotificationKind = "assigned"
	NotificationReadyForPickup NotificationKind = "ready_for_pickup"
)

func (k NotificationKind) String() string {
	return string(k)
}

// Notification - решение диспетчера о том, что курьера надо позвать. Не хранится.
type Notification struct {
	Kind  NotificationKind
	Order Order
	// Earning заполнен только для assigned.
	Earning decimal.Decimal
}

type AlertAction struct {
	Label  string
	Target string
}

// Alert - то, что курьер видит и закрывает сам.
type Alert struct {
	ID          string
	Kind        NotificationKind
	Title       string
	Lines       []string
	OrderID     string
	ShortID     string
	Earning     decimal.Decimal
	Action      AlertAction
	CreatedAt   time.Time
	ExpiresAt   time.Time
	DismissedAt *time.Time
}

func (a Alert) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}
