package metrics

import "ridersync/pkg/logger"

type handlerLogger interface {
	With(fields ...logger.Field) logger.Logger
}
