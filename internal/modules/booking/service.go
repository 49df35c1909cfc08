package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skynest/internal/domain"
	"skynest/internal/pkg/billing"
	"skynest/internal/pkg/dates"
	"skynest/internal/pkg/metrics"
	"skynest/internal/pkg/money"
	"skynest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdvanceFloorPercent is the minimum advance, as a share of the gross
// room charge, accepted at interactive creation time. The floor only
// applies when the caller sends a non-zero advance; zero means "no
// advance taken" and is always accepted.
const AdvanceFloorPercent = 10.0

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	guests   GuestRepository
	payments PaymentRepository
	services ServiceUsageRepository
	events   EventSink
	log      *zap.Logger
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	guests GuestRepository,
	payments PaymentRepository,
	services ServiceUsageRepository,
	events EventSink,
	log *zap.Logger,
) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		guests:   guests,
		payments: payments,
		services: services,
		events:   events,
		log:      log,
	}
}

func (s *Service) parseRange(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, err := dates.Parse(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	checkOut, err := dates.Parse(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	if !checkIn.Before(checkOut) {
		return time.Time{}, time.Time{}, ErrValidation
	}
	return checkIn, checkOut, nil
}

// conflictError builds the rejection payload for a taken room: up to
// five free rooms of the same type the desk can offer instead.
func (s *Service) conflictError(ctx context.Context, room *domain.Room, checkIn, checkOut time.Time) error {
	suggestions, err := s.rooms.FreeRooms(ctx, repository.FreeRoomQuery{
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		RoomTypeID:    room.RoomTypeID,
		ExcludeRoomID: room.ID,
		Limit:         5,
	})
	if err != nil {
		s.log.Warn("suggestion lookup failed",
			zap.Int64("room_id", room.ID), zap.Error(err))
	}
	return &ConflictError{RoomID: room.ID, Suggestions: suggestions}
}

// CreateBooking books a single room. The availability pre-check is
// advisory; the storage-layer exclusion constraint has the final word, so
// a lost race still comes back as a conflict rather than a dirty row.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	checkIn, checkOut, err := s.parseRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if req.RoomID <= 0 {
		return nil, ErrValidation
	}
	if req.BookedRate < 0 || req.DiscountAmount < 0 || req.LateFeeAmount < 0 || req.AdvancePayment < 0 || req.TaxRatePercent < 0 {
		return nil, ErrValidation
	}

	if _, err := s.guests.GetGuest(ctx, req.GuestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	rate := req.BookedRate
	if rate == 0 {
		rt, err := s.rooms.GetRoomType(ctx, room.RoomTypeID)
		if err != nil {
			return nil, err
		}
		rate = rt.DailyRate
	}

	conflicts, err := s.bookings.FindConflicts(ctx, req.RoomID, checkIn, checkOut, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		metrics.ConflictsRejected.Inc()
		return nil, s.conflictError(ctx, room, checkIn, checkOut)
	}

	if req.AdvancePayment > 0 {
		nights := dates.Nights(checkIn, checkOut)
		floor := float64(nights) * rate * AdvanceFloorPercent / 100
		if req.AdvancePayment < floor {
			return nil, ErrAdvanceTooLow
		}
	}

	method := ""
	if req.PreferredPaymentMethod != "" {
		m := domain.NormalizePaymentMethod(req.PreferredPaymentMethod)
		if m == "" {
			return nil, ErrValidation
		}
		method = string(m)
	}

	b := &domain.Booking{
		GuestID:                req.GuestID,
		RoomID:                 &req.RoomID,
		CheckInDate:            checkIn,
		CheckOutDate:           checkOut,
		Status:                 domain.BookingBooked,
		BookedRate:             rate,
		TaxRatePercent:         req.TaxRatePercent,
		DiscountAmount:         req.DiscountAmount,
		LateFeeAmount:          req.LateFeeAmount,
		AdvancePayment:         req.AdvancePayment,
		PreferredPaymentMethod: method,
		CreatedAt:              time.Now().UTC(),
		UpdatedAt:              time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrRoomOverlap) {
			metrics.ConflictsRejected.Inc()
			return nil, s.conflictError(ctx, room, checkIn, checkOut)
		}
		return nil, err
	}

	metrics.BookingsCreated.WithLabelValues("interactive").Inc()
	if s.events != nil {
		s.events.BookingCreated(ctx, b)
	}
	s.log.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("room_id", req.RoomID),
		zap.String("check_in_date", req.CheckInDate),
		zap.String("check_out_date", req.CheckOutDate))
	return b, nil
}

// CreateGroupBooking books room_quantity free rooms of one type as
// separate rows sharing a group name. The group advance must clear the
// floor over the whole group charge, then splits evenly per room.
func (s *Service) CreateGroupBooking(ctx context.Context, req CreateBookingRequest) ([]*domain.Booking, error) {
	checkIn, checkOut, err := s.parseRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if req.RoomTypeID <= 0 || req.RoomQuantity <= 0 || req.AdvancePayment < 0 || req.TaxRatePercent < 0 || req.BookedRate < 0 {
		return nil, ErrValidation
	}

	if _, err := s.guests.GetGuest(ctx, req.GuestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	rt, err := s.rooms.GetRoomType(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	free, err := s.rooms.FreeRooms(ctx, repository.FreeRoomQuery{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		RoomTypeID: req.RoomTypeID,
		Limit:      req.RoomQuantity,
	})
	if err != nil {
		return nil, err
	}
	if len(free) < req.RoomQuantity {
		return nil, &ShortageError{RoomTypeID: req.RoomTypeID, Requested: req.RoomQuantity, Free: len(free)}
	}

	rate := req.BookedRate
	if rate == 0 {
		rate = rt.DailyRate
	}

	nights := dates.Nights(checkIn, checkOut)
	if req.AdvancePayment > 0 {
		floor := float64(req.RoomQuantity) * float64(nights) * rate * AdvanceFloorPercent / 100
		if req.AdvancePayment < floor {
			return nil, ErrAdvanceTooLow
		}
	}
	advancePerRoom := req.AdvancePayment / float64(req.RoomQuantity)

	method := ""
	if req.PreferredPaymentMethod != "" {
		m := domain.NormalizePaymentMethod(req.PreferredPaymentMethod)
		if m == "" {
			return nil, ErrValidation
		}
		method = string(m)
	}

	groupName := req.GroupName
	if groupName == "" {
		groupName = fmt.Sprintf("Group-%s", uuid.NewString()[:8])
	}

	now := time.Now().UTC()
	bs := make([]*domain.Booking, 0, req.RoomQuantity)
	for i := 0; i < req.RoomQuantity; i++ {
		roomID := free[i].RoomID
		bs = append(bs, &domain.Booking{
			GuestID:                req.GuestID,
			RoomID:                 &roomID,
			CheckInDate:            checkIn,
			CheckOutDate:           checkOut,
			Status:                 domain.BookingBooked,
			BookedRate:             rate,
			TaxRatePercent:         req.TaxRatePercent,
			AdvancePayment:         advancePerRoom,
			IsGroupBooking:         true,
			GroupName:              groupName,
			PreferredPaymentMethod: method,
			CreatedAt:              now,
			UpdatedAt:              now,
		})
	}

	if err := s.bookings.CreateGroup(ctx, bs); err != nil {
		if errors.Is(err, repository.ErrRoomOverlap) {
			metrics.ConflictsRejected.Inc()
			// Someone else took a room between the free-room query and
			// the insert; recount so the shortfall is reported fresh.
			stillFree, ferr := s.rooms.FreeRooms(ctx, repository.FreeRoomQuery{
				CheckIn:    checkIn,
				CheckOut:   checkOut,
				RoomTypeID: req.RoomTypeID,
				Limit:      req.RoomQuantity,
			})
			if ferr != nil {
				s.log.Warn("shortfall recount failed",
					zap.Int64("room_type_id", req.RoomTypeID), zap.Error(ferr))
			}
			return nil, &ShortageError{RoomTypeID: req.RoomTypeID, Requested: req.RoomQuantity, Free: len(stillFree)}
		}
		return nil, err
	}

	for _, b := range bs {
		metrics.BookingsCreated.WithLabelValues("interactive").Inc()
		if s.events != nil {
			s.events.BookingCreated(ctx, b)
		}
	}
	s.log.Info("group booking created",
		zap.String("group_name", groupName),
		zap.Int("rooms", req.RoomQuantity))
	return bs, nil
}

// ChangeStatus moves a booking through its lifecycle and applies the room
// side effects: check-in occupies the room, check-out frees it, and
// cancelling a never-arrived booking releases any hold on its room.
func (s *Service) ChangeStatus(ctx context.Context, id int64, rawStatus string) (*domain.Booking, error) {
	target, err := domain.ParseBookingStatus(rawStatus)
	if err != nil {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	from := b.Status
	if !from.CanTransitionTo(target) {
		return nil, &TransitionError{From: from, To: target}
	}

	if err := s.bookings.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	b.Status = target

	if b.RoomID != nil {
		switch target {
		case domain.BookingCheckedIn:
			if err := s.rooms.UpdateStatus(ctx, *b.RoomID, domain.RoomOccupied); err != nil {
				s.log.Error("room status update failed after check-in",
					zap.Int64("room_id", *b.RoomID), zap.Error(err))
			}
		case domain.BookingCheckedOut:
			if err := s.rooms.UpdateStatus(ctx, *b.RoomID, domain.RoomAvailable); err != nil {
				s.log.Error("room status update failed after check-out",
					zap.Int64("room_id", *b.RoomID), zap.Error(err))
			}
		case domain.BookingCancelled:
			room, err := s.rooms.GetByID(ctx, *b.RoomID)
			if err == nil && (room.Status == domain.RoomReserved || room.Status == domain.RoomOccupied) {
				if err := s.rooms.UpdateStatus(ctx, *b.RoomID, domain.RoomAvailable); err != nil {
					s.log.Error("room release failed after cancellation",
						zap.Int64("room_id", *b.RoomID), zap.Error(err))
				}
			}
		}
	}

	if s.events != nil {
		s.events.BookingStatusChanged(ctx, b, from, target)
	}
	s.log.Info("booking status changed",
		zap.Int64("booking_id", id),
		zap.String("from", from.String()),
		zap.String("to", target.String()))
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetFull assembles the folio: booking row, ledgers, and the computed
// financial breakdown.
func (s *Service) GetFull(ctx context.Context, id int64) (*FullBookingResponse, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	usage, err := s.services.ListUsageByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.payments.ListAdjustmentsByBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	svcLines := make([]billing.ServiceLine, 0, len(usage))
	for _, u := range usage {
		svcLines = append(svcLines, billing.ServiceLine{Qty: u.Qty, UnitPriceAtUse: u.UnitPriceAtUse})
	}
	payLines := make([]billing.PaymentLine, 0, len(payments))
	for _, p := range payments {
		payLines = append(payLines, billing.PaymentLine{Amount: p.Amount})
	}
	adjLines := make([]billing.AdjustmentLine, 0, len(adjustments))
	for _, a := range adjustments {
		adjLines = append(adjLines, billing.AdjustmentLine{Amount: a.Amount, Type: string(a.Type)})
	}

	totals := billing.Calculate(b.Charges(), svcLines, payLines, adjLines)

	out := &FullBookingResponse{
		Booking:     toResponse(b),
		Services:    make([]ServiceLineResponse, 0, len(usage)),
		Payments:    make([]PaymentResponse, 0, len(payments)),
		Adjustments: make([]AdjustmentResponse, 0, len(adjustments)),
		Totals:      totals.View(),
	}
	for _, u := range usage {
		out.Services = append(out.Services, ServiceLineResponse{
			ID:        u.ID,
			ServiceID: u.ServiceID,
			Quantity:  u.Qty,
			UnitPrice: money.Format(u.UnitPriceAtUse),
			UsedOn:    dates.Format(u.UsedOn),
		})
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, PaymentResponse{
			ID:        p.ID,
			Amount:    money.Format(p.Amount),
			Method:    string(p.Method),
			PaidAt:    p.PaidAt.UTC().Format(time.RFC3339),
			Reference: p.PaymentReference,
		})
	}
	for _, a := range adjustments {
		out.Adjustments = append(out.Adjustments, AdjustmentResponse{
			ID:     a.ID,
			Amount: money.Format(a.Amount),
			Type:   string(a.Type),
			Reason: a.Reason,
		})
	}
	return out, nil
}

func toResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                     b.ID,
		PreBookingID:           b.PreBookingID,
		GuestID:                b.GuestID,
		RoomID:                 b.RoomID,
		CheckInDate:            dates.Format(b.CheckInDate),
		CheckOutDate:           dates.Format(b.CheckOutDate),
		Status:                 b.Status.String(),
		BookedRate:             money.Format(b.BookedRate),
		AdvancePayment:         money.Format(b.AdvancePayment),
		IsGroupBooking:         b.IsGroupBooking,
		GroupName:              b.GroupName,
		PreferredPaymentMethod: b.PreferredPaymentMethod,
	}
}
