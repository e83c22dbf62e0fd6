package alerts

import "errors"

var (
	ErrAlertNotFound  = errors.New("alert not found")
	ErrInvalidLimit   = errors.New("history limit must be positive")
	ErrDuplicateAlert = errors.New("alert already in history")
)
