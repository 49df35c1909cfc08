package booking

import (
	"errors"
	"fmt"

	"skynest/internal/domain"
	"skynest/internal/repository"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("booking not found")
	ErrGuestNotFound  = errors.New("guest not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotAvailable   = errors.New("room not available for the selected dates")
	ErrAdvanceTooLow  = errors.New("advance payment below required minimum")
	ErrNotEnoughRooms = errors.New("not enough free rooms of the requested type")
)

// TransitionError reports a rejected status change with both endpoints,
// so the dashboard can show which move was illegal.
type TransitionError struct {
	From domain.BookingStatus
	To   domain.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// ConflictError rejects a single-room creation whose room is taken,
// carrying free same-type alternatives for the desk to offer instead.
type ConflictError struct {
	RoomID      int64
	Suggestions []repository.FreeRoom
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %d not available for the selected dates", e.RoomID)
}

func (e *ConflictError) Unwrap() error { return ErrNotAvailable }

// ShortageError rejects a group creation that cannot be covered,
// reporting how many rooms were requested versus actually free.
type ShortageError struct {
	RoomTypeID int64
	Requested  int
	Free       int
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("need %d rooms of type %d, found %d", e.Requested, e.RoomTypeID, e.Free)
}

func (e *ShortageError) Unwrap() error { return ErrNotEnoughRooms }
