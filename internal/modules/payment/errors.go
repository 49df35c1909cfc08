package payment

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingClosed   = errors.New("booking does not accept ledger entries")
)
