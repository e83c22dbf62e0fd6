//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=status_get_test
package status_get

import (
	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Connection - состояние канала событий. До первого подключения канала нет, Connected = false.
type Connection interface {
	Connected() bool
}

type Orders interface {
	Snapshot() []entities.Order
	Rider() entities.Rider
}
