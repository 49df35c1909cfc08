package prebooking

import (
	"context"

	"skynest/internal/domain"
	"skynest/internal/repository"
)

type PreBookingRepository interface {
	Create(ctx context.Context, p *domain.PreBooking) error
	GetByID(ctx context.Context, id int64) (*domain.PreBooking, error)
	List(ctx context.Context, status domain.PreBookingStatus) ([]domain.PreBooking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PreBookingStatus) error
}

type RoomRepository interface {
	GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error)
	FreeRooms(ctx context.Context, q repository.FreeRoomQuery) ([]repository.FreeRoom, error)
	Hold(ctx context.Context, roomIDs []int64, preBookingID int64) error
	ReleaseHeld(ctx context.Context, preBookingID int64) (int64, error)
}

type CustomerRepository interface {
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
}
