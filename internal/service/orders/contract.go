//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_test
package orders

import (
	"context"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

type OrdersGateway interface {
	FetchOrders(ctx context.Context) ([]entities.Order, error)
	AssignRider(ctx context.Context, orderID, riderID string) error
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatusType) error
}

// Notifier получает каждое событие после того, как коллекция обновлена.
type Notifier interface {
	Notify(ctx context.Context, ev entities.Event)
}

type (
	Strategy        int
	StrategyFactory interface {
		GetStrategy(name entities.EventName) (Strategy, error)
	}
)

const (
	// StrategyRefresh - перечитать всю коллекцию с сервера.
	StrategyRefresh Strategy = iota + 1
	// StrategyPatch - заменить одну запись заказом из события.
	StrategyPatch
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
