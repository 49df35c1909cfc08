package service

import (
	"context"

	"skynest/internal/domain"
)

type ServiceRepository interface {
	GetCatalogItem(ctx context.Context, id int64) (*domain.ServiceCatalog, error)
	ListCatalog(ctx context.Context) ([]domain.ServiceCatalog, error)
	CreateUsage(ctx context.Context, u *domain.ServiceUsage) error
	ListUsageByBooking(ctx context.Context, bookingID int64) ([]domain.ServiceUsage, error)
	DeleteUsage(ctx context.Context, id int64) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
