//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_events_test
package rider_events

import (
	"context"
	"encoding/json"

	"ridersync/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Publisher - реестр событий. Тот же, куда пишет socket-канал.
type Publisher interface {
	Publish(ctx context.Context, name string, payload json.RawMessage) error
}
