package payment

import (
	"context"
	"errors"
	"time"

	"skynest/internal/domain"
	"skynest/internal/pkg/dates"
	"skynest/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	payments PaymentRepository
	bookings BookingRepository
	log      *zap.Logger
}

func NewService(payments PaymentRepository, bookings BookingRepository, log *zap.Logger) *Service {
	return &Service{payments: payments, bookings: bookings, log: log}
}

func (s *Service) loadOpenBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	// Cancelled bookings take no further ledger entries; checked-out ones
	// still do, for late fees and post-stay settlements.
	if b.Status == domain.BookingCancelled {
		return nil, ErrBookingClosed
	}
	return b, nil
}

func (s *Service) RecordPayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrValidation
	}
	method := domain.NormalizePaymentMethod(req.Method)
	if method == "" {
		return nil, ErrValidation
	}
	paidAt := time.Now().UTC()
	switch {
	case req.PaidAt != "":
		t, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			return nil, ErrValidation
		}
		paidAt = t.UTC()
	case req.PaidOn != "":
		d, err := dates.Parse(req.PaidOn)
		if err != nil {
			return nil, ErrValidation
		}
		paidAt = d
	}
	if _, err := s.loadOpenBooking(ctx, req.BookingID); err != nil {
		return nil, err
	}

	p := &domain.Payment{
		BookingID:        req.BookingID,
		Amount:           req.Amount,
		Method:           method,
		PaidAt:           paidAt,
		PaymentReference: req.Reference,
		Note:             req.Note,
	}
	if err := s.payments.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("payment recorded",
		zap.Int64("booking_id", req.BookingID),
		zap.Float64("amount", req.Amount),
		zap.String("method", string(method)))
	return p, nil
}

func (s *Service) RecordAdjustment(ctx context.Context, req CreateAdjustmentRequest) (*domain.PaymentAdjustment, error) {
	if req.Amount == 0 {
		return nil, ErrValidation
	}
	amount := req.Amount
	var t domain.AdjustmentType
	if req.Type == "" {
		// No type given: a negative amount reads as money going back to
		// the guest, so it becomes a refund stored positive.
		if amount < 0 {
			t = domain.AdjustmentRefund
			amount = -amount
		} else {
			t = domain.AdjustmentManual
		}
	} else {
		t = domain.AdjustmentType(req.Type)
		if !t.IsValid() {
			return nil, ErrValidation
		}
		// Manual adjustments are signed; the other types must be positive.
		if t != domain.AdjustmentManual && amount <= 0 {
			return nil, ErrValidation
		}
	}
	if _, err := s.loadOpenBooking(ctx, req.BookingID); err != nil {
		return nil, err
	}

	a := &domain.PaymentAdjustment{
		BookingID: req.BookingID,
		Amount:    amount,
		Type:      t,
		Reason:    req.Reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.payments.CreateAdjustment(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("adjustment recorded",
		zap.Int64("booking_id", req.BookingID),
		zap.String("type", string(t)),
		zap.Float64("amount", amount))
	return a, nil
}

func (s *Service) ListForBooking(ctx context.Context, bookingID int64) ([]domain.Payment, []domain.PaymentAdjustment, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}
	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	adjustments, err := s.payments.ListAdjustmentsByBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	return payments, adjustments, nil
}
