package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Withdrawal struct {
	ID        string
	RiderID   string
	RiderName string
	Amount    decimal.Decimal
	// Status: true - выплачено, false - отклонено, nil - в обработке.
	Status *bool
	Date   time.Time
}

func (w Withdrawal) StatusLabel() string {
	switch {
	case w.Status == nil:
		return "Pending"
	case *w.Status:
		return "Completed"
	default:
		return "Rejected"
	}
}

type WithdrawalRequest struct {
	RiderID   string
	RiderName string
	Amount    decimal.Decimal
}
