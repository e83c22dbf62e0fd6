//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=wallet_test
package wallet

import (
	"context"

	"ridersync/internal/entities"
)

type Gateway interface {
	FetchWithdrawals(ctx context.Context) ([]entities.Withdrawal, error)
	RequestWithdrawal(ctx context.Context, req entities.WithdrawalRequest) (*entities.Withdrawal, error)
}

// RiderResolver отдает свежий профиль курьера: баланс меняется на сервере.
type RiderResolver interface {
	ResolveRider(ctx context.Context) (entities.Rider, error)
}
