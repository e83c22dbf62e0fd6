package orders

import "errors"

var (
	ErrUndefinedEvent     = errors.New("undefined order event")
	ErrOrderNotFound      = errors.New("order not found")
	ErrAlreadyAssigned    = errors.New("order already has a rider")
	ErrNotEligible        = errors.New("order is waiting for vendors")
	ErrNotAssignedToRider = errors.New("order is not assigned to this rider")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrNoRider            = errors.New("rider is unknown")
)
