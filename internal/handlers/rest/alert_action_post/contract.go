//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=alert_action_post_test
package alert_action_post

import (
	"context"

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
	Act(ctx context.Context, alertID string) (entities.AlertAction, error)
}
