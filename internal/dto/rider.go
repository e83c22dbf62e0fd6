package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"ridersync/internal/entities"
)

type Rider struct {
	ID           string          `json:"_id"`
	UserName     string          `json:"userName"`
	AvailableBal decimal.Decimal `json:"availableBal"`
	University   string          `json:"university"`
}

func RiderToEntity(r Rider) entities.Rider {
	return entities.Rider{
		ID:               r.ID,
		Name:             r.UserName,
		AvailableBalance: r.AvailableBal,
		University:       r.University,
	}
}

type Withdrawal struct {
	ID        string          `json:"_id"`
	RiderID   string          `json:"riderId"`
	RiderName string          `json:"riderName"`
	Amount    decimal.Decimal `json:"amount"`
	Status    *bool           `json:"status"`
	Date      *time.Time      `json:"date,omitempty"`
}

func WithdrawalToEntity(w Withdrawal) entities.Withdrawal {
	withdrawal := entities.Withdrawal{
		ID:        w.ID,
		RiderID:   w.RiderID,
		RiderName: w.RiderName,
		Amount:    w.Amount,
		Status:    w.Status,
	}
	if w.Date != nil {
		withdrawal.Date = *w.Date
	}
	return withdrawal
}

type University struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type UniversitiesResponse struct {
	Universities []University `json:"universities"`
}

func UniversitiesToEntities(list []University) []entities.University {
	universities := make([]entities.University, 0, len(list))
	for _, u := range list {
		universities = append(universities, entities.University{ID: u.ID, Name: u.Name})
	}
	return universities
}
