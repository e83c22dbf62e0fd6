package entities

import "github.com/shopspring/decimal"

type Rider struct {
	ID               string
	Name             string
	AvailableBalance decimal.Decimal
	University       string
}

// Signup - анкета нового курьера, все поля обязательны.
type Signup struct {
	Name       string
	Email      string
	Phone      string
	Password   string
	University string
}

type University struct {
	ID   string
	Name string
}
