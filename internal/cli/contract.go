//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cli_test
package cli

import (
	"context"

	"github.com/shopspring/decimal"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

type Sessions interface {
	Login(ctx context.Context, email, password string) (*entities.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*entities.Session, error)
	ResolveRider(ctx context.Context) (entities.Rider, error)
	Signup(ctx context.Context, req entities.Signup) (string, error)
	Universities(ctx context.Context) ([]entities.University, error)
}

type Wallet interface {
	Withdraw(ctx context.Context, amount decimal.Decimal) (*entities.Withdrawal, error)
	History(ctx context.Context) ([]entities.Withdrawal, error)
}

type OrdersGateway interface {
	FetchOrders(ctx context.Context) ([]entities.Order, error)
	AssignRider(ctx context.Context, orderID, riderID string) error
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatusType) error
}

type AlertHistory interface {
	History(ctx context.Context, limit int) ([]entities.Alert, error)
}

// Deps - то, что нужно командам. Собирается один раз на запуск команды.
type Deps struct {
	Log      logger.Logger
	Sessions Sessions
	Wallet   Wallet
	Orders   OrdersGateway
	Alerts   AlertHistory
}

// Loader собирает Deps. Ресурсы за ними освобождает вызывающий.
type Loader func(ctx context.Context) (*Deps, error)
