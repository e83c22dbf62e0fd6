//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=alerts_get_test
package alerts_get

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

type Service interface {
	Active() []entities.Alert
}
