package prebooking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("pre-booking not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrTypeNotFound     = errors.New("room type not found")
	ErrNotEnoughRooms   = errors.New("not enough free rooms to hold")
)
