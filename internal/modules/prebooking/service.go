package prebooking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skynest/internal/domain"
	"skynest/internal/pkg/dates"
	"skynest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	preBookings PreBookingRepository
	rooms       RoomRepository
	customers   CustomerRepository
	log         *zap.Logger
}

func NewService(preBookings PreBookingRepository, rooms RoomRepository, customers CustomerRepository, log *zap.Logger) *Service {
	return &Service{preBookings: preBookings, rooms: rooms, customers: customers, log: log}
}

// Create places a pre-booking and holds free rooms of the type as
// Reserved on its behalf. The hold is best-effort capacity signalling;
// conversion re-checks availability against real bookings.
func (s *Service) Create(ctx context.Context, req CreatePreBookingRequest) (*domain.PreBooking, int, error) {
	checkIn, err := dates.Parse(req.ExpectedCheckIn)
	if err != nil {
		return nil, 0, ErrValidation
	}
	checkOut, err := dates.Parse(req.ExpectedCheckOut)
	if err != nil {
		return nil, 0, ErrValidation
	}
	if !checkIn.Before(checkOut) || req.NumberOfRooms <= 0 {
		return nil, 0, ErrValidation
	}

	var autoCancel *time.Time
	if req.AutoCancelDate != "" {
		d, err := dates.Parse(req.AutoCancelDate)
		if err != nil {
			return nil, 0, ErrValidation
		}
		autoCancel = &d
	} else {
		d := dates.AddDays(checkIn, -7)
		autoCancel = &d
	}

	if _, err := s.customers.GetCustomer(ctx, req.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrCustomerNotFound
		}
		return nil, 0, err
	}
	if _, err := s.rooms.GetRoomType(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrTypeNotFound
		}
		return nil, 0, err
	}

	free, err := s.rooms.FreeRooms(ctx, repository.FreeRoomQuery{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomTypeID: req.RoomTypeID,
		Limit:      req.NumberOfRooms,
	})
	if err != nil {
		return nil, 0, err
	}
	if len(free) < req.NumberOfRooms {
		return nil, 0, ErrNotEnoughRooms
	}

	p := &domain.PreBooking{
		Code:             fmt.Sprintf("PB-%s", strings.ToUpper(uuid.NewString()[:8])),
		CustomerID:       req.CustomerID,
		RoomTypeID:       req.RoomTypeID,
		ExpectedCheckIn:  checkIn,
		ExpectedCheckOut: checkOut,
		NumberOfRooms:    req.NumberOfRooms,
		Status:           domain.PreBookingPending,
		GroupName:        req.GroupName,
		AutoCancelDate:   autoCancel,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.preBookings.Create(ctx, p); err != nil {
		return nil, 0, err
	}

	roomIDs := make([]int64, 0, req.NumberOfRooms)
	for i := 0; i < req.NumberOfRooms; i++ {
		roomIDs = append(roomIDs, free[i].RoomID)
	}
	if err := s.rooms.Hold(ctx, roomIDs, p.ID); err != nil {
		// The pre-booking row stands without its hold; the conversion path
		// re-checks availability, so this is degraded, not broken.
		s.log.Error("room hold failed",
			zap.Int64("pre_booking_id", p.ID), zap.Error(err))
		return p, 0, nil
	}

	s.log.Info("pre-booking created",
		zap.Int64("pre_booking_id", p.ID),
		zap.String("code", p.Code),
		zap.Int("rooms_held", len(roomIDs)))
	return p, len(roomIDs), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.PreBooking, error) {
	p, err := s.preBookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, rawStatus string) ([]domain.PreBooking, error) {
	var status domain.PreBookingStatus
	if rawStatus != "" {
		switch strings.ToLower(strings.TrimSpace(rawStatus)) {
		case "pending":
			status = domain.PreBookingPending
		case "confirmed":
			status = domain.PreBookingConfirmed
		case "converted":
			status = domain.PreBookingConverted
		case "cancelled":
			status = domain.PreBookingCancelled
		default:
			return nil, ErrValidation
		}
	}
	return s.preBookings.List(ctx, status)
}

// Cancel marks a pending pre-booking Cancelled and releases its held
// rooms.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.PreBooking, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PreBookingPending && p.Status != domain.PreBookingConfirmed {
		return nil, ErrValidation
	}

	if err := s.preBookings.UpdateStatus(ctx, id, domain.PreBookingCancelled); err != nil {
		return nil, err
	}
	released, err := s.rooms.ReleaseHeld(ctx, id)
	if err != nil {
		s.log.Error("release of held rooms failed",
			zap.Int64("pre_booking_id", id), zap.Error(err))
	}
	p.Status = domain.PreBookingCancelled
	s.log.Info("pre-booking cancelled",
		zap.Int64("pre_booking_id", id),
		zap.Int64("rooms_released", released))
	return p, nil
}
