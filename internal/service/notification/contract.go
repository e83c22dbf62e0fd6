//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"
	"time"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

// Player проигрывает звуковой сигнал. Ошибка не мешает показу уведомления.
type Player interface {
	Play(ctx context.Context) error
}

type AlertCenter interface {
	Show(ctx context.Context, alert entities.Alert) entities.Alert
}

type ExpiryCalculator interface {
	CalculateExpiry(kind entities.NotificationKind, shownAt time.Time) time.Time
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
