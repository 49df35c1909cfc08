package scheduler

import (
	"context"
	"fmt"
	"time"

	"skynest/internal/domain"
	"skynest/internal/pkg/metrics"

	"go.uber.org/zap"
)

// AutoCancel cancels pending pre-bookings whose auto-cancel deadline has
// passed and releases their held rooms.
type AutoCancel struct {
	preBookings PreBookingStore
	rooms       RoomStore
	log         *zap.Logger
}

func NewAutoCancel(preBookings PreBookingStore, rooms RoomStore, log *zap.Logger) *AutoCancel {
	return &AutoCancel{preBookings: preBookings, rooms: rooms, log: log}
}

// Run cancels every pending pre-booking with auto_cancel_date strictly
// before today. A failed row is recorded and the batch moves on.
func (j *AutoCancel) Run(ctx context.Context, today time.Time) ([]RowResult, Summary, error) {
	expired, err := j.preBookings.ListExpiredPending(ctx, today)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("list expired pre-bookings: %w", err)
	}

	rows := make([]RowResult, 0, len(expired))
	for _, p := range expired {
		row := RowResult{ID: p.ID, Outcome: OutcomeSuccess}

		// Holds are released before the status flips: a failed release
		// leaves the row Pending, so the next run picks it up again
		// instead of stranding Reserved rooms behind a Cancelled row.
		released, err := j.rooms.ReleaseHeld(ctx, p.ID)
		if err != nil {
			row.Outcome = OutcomeFailed
			row.Detail = err.Error()
			j.log.Error("held-room release failed, leaving pre-booking pending",
				zap.Int64("pre_booking_id", p.ID), zap.Error(err))
		} else if err := j.preBookings.UpdateStatus(ctx, p.ID, domain.PreBookingCancelled); err != nil {
			row.Outcome = OutcomeFailed
			row.Detail = err.Error()
			j.log.Error("auto-cancel failed",
				zap.Int64("pre_booking_id", p.ID), zap.Error(err))
		} else {
			j.log.Info("pre-booking auto-cancelled",
				zap.Int64("pre_booking_id", p.ID),
				zap.Int64("rooms_released", released))
		}

		metrics.SchedulerRows.WithLabelValues("auto_cancel", string(row.Outcome)).Inc()
		rows = append(rows, row)
	}
	return rows, summarize(rows), nil
}
