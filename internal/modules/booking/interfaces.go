package booking

import (
	"context"
	"time"

	"skynest/internal/domain"
	"skynest/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	CreateGroup(ctx context.Context, bs []*domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	AggregateLedgers(ctx context.Context, bookingID int64) (repository.LedgerTotals, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error)
	FreeRooms(ctx context.Context, q repository.FreeRoomQuery) ([]repository.FreeRoom, error)
	UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error
}

type GuestRepository interface {
	GetGuest(ctx context.Context, id int64) (*domain.Guest, error)
}

type PaymentRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	ListAdjustmentsByBooking(ctx context.Context, bookingID int64) ([]domain.PaymentAdjustment, error)
}

type ServiceUsageRepository interface {
	ListUsageByBooking(ctx context.Context, bookingID int64) ([]domain.ServiceUsage, error)
}

// EventSink receives lifecycle notifications after state changes commit.
type EventSink interface {
	BookingCreated(ctx context.Context, b *domain.Booking)
	BookingStatusChanged(ctx context.Context, b *domain.Booking, from, to domain.BookingStatus)
}
