package scheduler

import (
	"context"
	"time"

	"skynest/internal/domain"
	"skynest/internal/repository"
)

type PreBookingStore interface {
	ListExpiredPending(ctx context.Context, today time.Time) ([]domain.PreBooking, error)
	ListConvertible(ctx context.Context, targetCheckIn, today time.Time) ([]domain.PreBooking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PreBookingStatus) error
}

type BookingStore interface {
	ConvertPreBooking(ctx context.Context, preBookingID int64, bs []*domain.Booking) error
	ListOverdueCheckedIn(ctx context.Context, today time.Time) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type RoomStore interface {
	GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error)
	FreeRooms(ctx context.Context, q repository.FreeRoomQuery) ([]repository.FreeRoom, error)
	ReleaseHeld(ctx context.Context, preBookingID int64) (int64, error)
	UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error
}

type CustomerStore interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
}
