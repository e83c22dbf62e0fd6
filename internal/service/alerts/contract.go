//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=alerts_test
package alerts

import (
	"context"
	"time"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

// HistoryRepository - журнал всех показанных уведомлений для CLI.
type HistoryRepository interface {
	Append(ctx context.Context, alert entities.Alert) error
	MarkDismissed(ctx context.Context, alertID string, at time.Time) error
	List(ctx context.Context, limit int) ([]entities.Alert, error)
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
