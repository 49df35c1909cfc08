package availability

import (
	"context"
	"errors"
	"time"

	"skynest/internal/pkg/dates"
	"skynest/internal/repository"
)

// ConflictSlot is one blocking booking shown to the caller when a room
// is unavailable.
type ConflictSlot struct {
	BookingID int64  `json:"booking_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
}

// RoomCheck is the result of checking a single room for a date range.
// Suggestions list same-type free rooms when the room is taken.
type RoomCheck struct {
	RoomID      int64                 `json:"room_id"`
	Available   bool                  `json:"available"`
	Conflicts   []ConflictSlot        `json:"conflicts"`
	Suggestions []repository.FreeRoom `json:"suggestions,omitempty"`
}

// TypeCheck reports whether a room type can cover a requested quantity.
type TypeCheck struct {
	RoomTypeID int64 `json:"room_type_id"`
	Requested  int   `json:"requested"`
	FreeCount  int   `json:"free_count"`
	Available  bool  `json:"available"`
}

type Service struct {
	bookings BookingFinder
	rooms    RoomFinder
}

func NewService(bookings BookingFinder, rooms RoomFinder) *Service {
	return &Service{bookings: bookings, rooms: rooms}
}

func validRange(checkIn, checkOut time.Time) bool {
	return !checkIn.IsZero() && !checkOut.IsZero() && dates.Truncate(checkIn).Before(dates.Truncate(checkOut))
}

// CheckRoom tests one room against [checkIn, checkOut) using the
// half-open overlap rule. Only Booked and Checked-In rows block. When the
// room is taken, up to five free rooms of the same type are suggested.
func (s *Service) CheckRoom(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) (*RoomCheck, error) {
	if !validRange(checkIn, checkOut) {
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	conflicts, err := s.bookings.FindConflicts(ctx, roomID, dates.Truncate(checkIn), dates.Truncate(checkOut), excludeBookingID)
	if err != nil {
		return nil, err
	}

	out := &RoomCheck{
		RoomID:    roomID,
		Available: len(conflicts) == 0,
		Conflicts: make([]ConflictSlot, 0, len(conflicts)),
	}
	for _, c := range conflicts {
		out.Conflicts = append(out.Conflicts, ConflictSlot{
			BookingID: c.ID,
			CheckIn:   dates.Format(c.CheckInDate),
			CheckOut:  dates.Format(c.CheckOutDate),
			Status:    c.Status.String(),
		})
	}

	if !out.Available {
		suggestions, err := s.rooms.FreeRooms(ctx, repository.FreeRoomQuery{
			CheckIn:       dates.Truncate(checkIn),
			CheckOut:      dates.Truncate(checkOut),
			RoomTypeID:    room.RoomTypeID,
			ExcludeRoomID: roomID,
			Limit:         5,
		})
		if err != nil {
			return nil, err
		}
		out.Suggestions = suggestions
	}
	return out, nil
}

// CheckRoomType reports whether `quantity` free rooms exist matching the
// query's type plus optional capacity and branch filters, for
// group-booking feasibility checks.
func (s *Service) CheckRoomType(ctx context.Context, q repository.FreeRoomQuery, quantity int) (*TypeCheck, error) {
	if !validRange(q.CheckIn, q.CheckOut) || quantity <= 0 || q.RoomTypeID <= 0 {
		return nil, ErrValidation
	}
	if _, err := s.rooms.GetRoomType(ctx, q.RoomTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	q.CheckIn = dates.Truncate(q.CheckIn)
	q.CheckOut = dates.Truncate(q.CheckOut)
	q.ExcludeRoomID = 0
	q.Limit = 0
	free, err := s.rooms.FreeRooms(ctx, q)
	if err != nil {
		return nil, err
	}
	return &TypeCheck{
		RoomTypeID: q.RoomTypeID,
		Requested:  quantity,
		FreeCount:  len(free),
		Available:  len(free) >= quantity,
	}, nil
}

// FreeRooms lists free rooms matching the query filters.
func (s *Service) FreeRooms(ctx context.Context, q repository.FreeRoomQuery) ([]repository.FreeRoom, error) {
	if !validRange(q.CheckIn, q.CheckOut) {
		return nil, ErrValidation
	}
	q.CheckIn = dates.Truncate(q.CheckIn)
	q.CheckOut = dates.Truncate(q.CheckOut)
	return s.rooms.FreeRooms(ctx, q)
}
