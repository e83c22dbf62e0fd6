package alert

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type AlertDB struct {
	ID           string
	Kind         string
	Title        string
	Lines        string // JSON-массив строк
	OrderID      string
	ShortID      string
	Earning      decimal.Decimal
	ActionLabel  string
	ActionTarget string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	DismissedAt  sql.NullTime
}
