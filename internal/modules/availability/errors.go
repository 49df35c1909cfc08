package availability

import "errors"

var (
	ErrValidation   = errors.New("invalid availability query")
	ErrRoomNotFound = errors.New("room not found")
	ErrTypeNotFound = errors.New("room type not found")
)
