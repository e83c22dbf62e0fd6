package wallet

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"ridersync/internal/entities"
)

type Service struct {
	gateway Gateway
	riders  RiderResolver
}

func New(gateway Gateway, riders RiderResolver) *Service {
	return &Service{
		gateway: gateway,
		riders:  riders,
	}
}

// Withdraw проверяет сумму по свежему балансу и только потом отправляет заявку.
// Сам баланс считает сервер.
func (s *Service) Withdraw(ctx context.Context, amount decimal.Decimal) (*entities.Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	rider, err := s.riders.ResolveRider(ctx)
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	if amount.GreaterThan(rider.AvailableBalance) {
		return nil, fmt.Errorf("%w: requested %s, available %s", ErrInsufficientFunds, amount, rider.AvailableBalance)
	}

	withdrawal, err := s.gateway.RequestWithdrawal(ctx, entities.WithdrawalRequest{
		RiderID:   rider.ID,
		RiderName: rider.Name,
		Amount:    amount,
	})
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	return withdrawal, nil
}

// History - заявки этого курьера, новые первыми.
func (s *Service) History(ctx context.Context) ([]entities.Withdrawal, error) {
	rider, err := s.riders.ResolveRider(ctx)
	if err != nil {
		return nil, fmt.Errorf("withdrawal history: %w", err)
	}

	all, err := s.gateway.FetchWithdrawals(ctx)
	if err != nil {
		return nil, fmt.Errorf("withdrawal history: %w", err)
	}

	own := make([]entities.Withdrawal, 0, len(all))
	for _, w := range all {
		if w.RiderID == rider.ID {
			own = append(own, w)
		}
	}

	slices.SortStableFunc(own, func(a, b entities.Withdrawal) int {
		return b.Date.Compare(a.Date)
	})
	return own, nil
}
