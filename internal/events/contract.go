//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_test
package events

import (
	"context"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

// Handler получает уже разобранное событие. Вызывается из единственной горутины диспетчеризации.
type Handler func(ctx context.Context, ev entities.Event)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
