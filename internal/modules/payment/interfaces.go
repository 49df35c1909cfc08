package payment

import (
	"context"

	"skynest/internal/domain"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, p *domain.Payment) error
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	CreateAdjustment(ctx context.Context, a *domain.PaymentAdjustment) error
	ListAdjustmentsByBooking(ctx context.Context, bookingID int64) ([]domain.PaymentAdjustment, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
