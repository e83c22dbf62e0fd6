//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=channel_test
package channel

import (
	"context"
	"encoding/json"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

// Publisher - куда канал отдает события сервера и события своего жизненного цикла.
type Publisher interface {
	Publish(ctx context.Context, name string, payload json.RawMessage) error
	Enqueue(ctx context.Context, ev entities.Event) error
}

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
