package alert_deadline

import (
	"time"

	"ridersync/internal/entities"
)

const (
	assignedTTL       = 10 * time.Second
	readyForPickupTTL = 8 * time.Second
)

type AlertExpiryFactory struct{}

func New() *AlertExpiryFactory {
	return &AlertExpiryFactory{}
}

// CalculateExpiry - когда уведомление пропадет само, если курьер его не закрыл.
func (f *AlertExpiryFactory) CalculateExpiry(kind entities.NotificationKind, shownAt time.Time) time.Time {
	resultTime := shownAt
	switch kind {
	case entities.NotificationAssigned:
		resultTime = resultTime.Add(assignedTTL)
	case entities.NotificationReadyForPickup:
		resultTime = resultTime.Add(readyForPickupTTL)
	default:
		resultTime = resultTime.Add(readyForPickupTTL)
	}

	return resultTime
}
