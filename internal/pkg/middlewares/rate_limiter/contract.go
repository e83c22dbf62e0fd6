package rate_limiter

import "ridersync/pkg/logger"

// Limiter - бюджет запросов, см. pkg/token_bucket.
type Limiter interface {
	Allow() bool
}

type handlerLogger interface {
	With(fields ...logger.Field) logger.Logger
}
