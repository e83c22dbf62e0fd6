package wallet

import "errors"

var (
	ErrInvalidAmount     = errors.New("withdrawal amount must be positive")
	ErrInsufficientFunds = errors.New("withdrawal amount exceeds available balance")
)
