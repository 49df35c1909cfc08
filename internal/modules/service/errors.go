package service

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrBookingNotFound = errors.New("booking not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrUsageNotFound   = errors.New("service usage not found")
	ErrBookingClosed   = errors.New("booking does not accept service charges")
)
