package service

import (
	"context"
	"errors"

	"skynest/internal/domain"
	"skynest/internal/pkg/dates"
	"skynest/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	catalog  ServiceRepository
	bookings BookingRepository
	log      *zap.Logger
}

func NewService(catalog ServiceRepository, bookings BookingRepository, log *zap.Logger) *Service {
	return &Service{catalog: catalog, bookings: bookings, log: log}
}

// RecordUsage charges a catalog service to a booking. The unit price is
// captured from the catalog at use time unless the request overrides it;
// either way, later catalog price changes never reprice past usage.
func (s *Service) RecordUsage(ctx context.Context, req RecordUsageRequest) (*domain.ServiceUsage, error) {
	if req.Quantity <= 0 {
		return nil, ErrValidation
	}
	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		return nil, ErrValidation
	}

	usedOn := dates.Today()
	if req.UsedOn != "" {
		d, err := dates.Parse(req.UsedOn)
		if err != nil {
			return nil, ErrValidation
		}
		usedOn = d
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Status == domain.BookingCancelled || b.Status == domain.BookingCheckedOut {
		return nil, ErrBookingClosed
	}

	item, err := s.catalog.GetCatalogItem(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	unitPrice := item.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	u := &domain.ServiceUsage{
		BookingID:      req.BookingID,
		ServiceID:      req.ServiceID,
		Qty:            req.Quantity,
		UnitPriceAtUse: unitPrice,
		UsedOn:         usedOn,
	}
	if err := s.catalog.CreateUsage(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("service usage recorded",
		zap.Int64("booking_id", req.BookingID),
		zap.Int64("service_id", req.ServiceID),
		zap.Float64("quantity", req.Quantity),
		zap.Float64("unit_price", unitPrice))
	return u, nil
}

func (s *Service) ListForBooking(ctx context.Context, bookingID int64) ([]domain.ServiceUsage, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return s.catalog.ListUsageByBooking(ctx, bookingID)
}

func (s *Service) DeleteUsage(ctx context.Context, id int64) error {
	if err := s.catalog.DeleteUsage(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUsageNotFound
		}
		return err
	}
	return nil
}

func (s *Service) Catalog(ctx context.Context) ([]domain.ServiceCatalog, error) {
	return s.catalog.ListCatalog(ctx)
}
