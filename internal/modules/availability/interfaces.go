package availability

import (
	"context"
	"time"

	"skynest/internal/domain"
	"skynest/internal/repository"
)

type BookingFinder interface {
	FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error)
}

type RoomFinder interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error)
	FreeRooms(ctx context.Context, q repository.FreeRoomQuery) ([]repository.FreeRoom, error)
}
