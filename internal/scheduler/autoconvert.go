package scheduler

import (
	"context"
	"fmt"
	"time"

	"skynest/internal/domain"
	"skynest/internal/pkg/metrics"
	"skynest/internal/repository"

	"go.uber.org/zap"
)

// ConvertLeadDays is how far ahead of arrival a pending pre-booking is
// turned into real bookings: holds arriving in exactly seven days whose
// auto-cancel deadline has already passed convert tonight.
const ConvertLeadDays = 7

// AutoConvert turns due pre-bookings into confirmed bookings. Converted
// bookings take the room type's current daily rate, no tax, and no
// advance; the front desk settles money at check-in.
type AutoConvert struct {
	preBookings PreBookingStore
	bookings    BookingStore
	rooms       RoomStore
	customers   CustomerStore
	log         *zap.Logger
}

func NewAutoConvert(preBookings PreBookingStore, bookings BookingStore, rooms RoomStore, customers CustomerStore, log *zap.Logger) *AutoConvert {
	return &AutoConvert{
		preBookings: preBookings,
		bookings:    bookings,
		rooms:       rooms,
		customers:   customers,
		log:         log,
	}
}

func (j *AutoConvert) Run(ctx context.Context, today time.Time) ([]RowResult, Summary, error) {
	target := today.AddDate(0, 0, ConvertLeadDays)
	due, err := j.preBookings.ListConvertible(ctx, target, today)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("list convertible pre-bookings: %w", err)
	}

	rows := make([]RowResult, 0, len(due))
	for _, p := range due {
		row := j.convertOne(ctx, &p)
		metrics.SchedulerRows.WithLabelValues("auto_convert", string(row.Outcome)).Inc()
		rows = append(rows, row)
	}
	return rows, summarize(rows), nil
}

func (j *AutoConvert) convertOne(ctx context.Context, p *domain.PreBooking) RowResult {
	row := RowResult{ID: p.ID}

	bs, err := j.buildBookings(ctx, p)
	if err == nil {
		// Booking inserts and the Converted flip share one transaction:
		// a failure on either side leaves neither behind.
		err = j.bookings.ConvertPreBooking(ctx, p.ID, bs)
		if err != nil {
			err = fmt.Errorf("insert bookings: %w", err)
		}
	}
	if err != nil {
		// A pre-booking that cannot convert is dead weight: mark it
		// Cancelled so the rooms go back into open inventory.
		row.Outcome = OutcomeFailed
		row.Detail = err.Error()
		j.log.Error("auto-convert failed, cancelling pre-booking",
			zap.Int64("pre_booking_id", p.ID), zap.Error(err))
		if cancelErr := j.preBookings.UpdateStatus(ctx, p.ID, domain.PreBookingCancelled); cancelErr != nil {
			j.log.Error("cancel after failed conversion failed",
				zap.Int64("pre_booking_id", p.ID), zap.Error(cancelErr))
		}
		if _, relErr := j.rooms.ReleaseHeld(ctx, p.ID); relErr != nil {
			j.log.Error("held-room release failed",
				zap.Int64("pre_booking_id", p.ID), zap.Error(relErr))
		}
		return row
	}

	if _, err := j.rooms.ReleaseHeld(ctx, p.ID); err != nil {
		j.log.Error("held-room release failed after conversion",
			zap.Int64("pre_booking_id", p.ID), zap.Error(err))
	}

	for range bs {
		metrics.BookingsCreated.WithLabelValues("auto_convert").Inc()
	}
	row.Outcome = OutcomeSuccess
	j.log.Info("pre-booking converted",
		zap.Int64("pre_booking_id", p.ID),
		zap.Int("bookings", len(bs)))
	return row
}

// buildBookings allocates free rooms and assembles the booking rows for
// one pre-booking; the caller inserts them together with the status flip.
func (j *AutoConvert) buildBookings(ctx context.Context, p *domain.PreBooking) ([]*domain.Booking, error) {
	customer, err := j.customers.GetCustomer(ctx, p.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("load customer %d: %w", p.CustomerID, err)
	}
	rt, err := j.rooms.GetRoomType(ctx, p.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("load room type %d: %w", p.RoomTypeID, err)
	}

	free, err := j.rooms.FreeRooms(ctx, repository.FreeRoomQuery{
		CheckIn:    p.ExpectedCheckIn,
		CheckOut:   p.ExpectedCheckOut,
		RoomTypeID: p.RoomTypeID,
		Limit:      p.NumberOfRooms,
	})
	if err != nil {
		return nil, fmt.Errorf("find free rooms: %w", err)
	}
	if len(free) < p.NumberOfRooms {
		return nil, fmt.Errorf("need %d rooms of type %d, found %d", p.NumberOfRooms, p.RoomTypeID, len(free))
	}

	groupName := ""
	if p.NumberOfRooms > 1 {
		groupName = p.GroupName
		if groupName == "" {
			groupName = fmt.Sprintf("Auto-Group-%d", p.ID)
		}
	}

	now := time.Now().UTC()
	preBookingID := p.ID
	bs := make([]*domain.Booking, 0, p.NumberOfRooms)
	for i := 0; i < p.NumberOfRooms; i++ {
		roomID := free[i].RoomID
		bs = append(bs, &domain.Booking{
			PreBookingID:   &preBookingID,
			GuestID:        customer.GuestID,
			RoomID:         &roomID,
			CheckInDate:    p.ExpectedCheckIn,
			CheckOutDate:   p.ExpectedCheckOut,
			Status:         domain.BookingBooked,
			BookedRate:     rt.DailyRate,
			IsGroupBooking: p.NumberOfRooms > 1,
			GroupName:      groupName,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	return bs, nil
}
