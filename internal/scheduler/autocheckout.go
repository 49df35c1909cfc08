package scheduler

import (
	"context"
	"fmt"
	"time"

	"skynest/internal/domain"
	"skynest/internal/pkg/metrics"

	"go.uber.org/zap"
)

// AutoCheckout closes out stays whose check-out date has passed while the
// guest was never checked out at the desk.
type AutoCheckout struct {
	bookings BookingStore
	rooms    RoomStore
	log      *zap.Logger
}

func NewAutoCheckout(bookings BookingStore, rooms RoomStore, log *zap.Logger) *AutoCheckout {
	return &AutoCheckout{bookings: bookings, rooms: rooms, log: log}
}

func (j *AutoCheckout) Run(ctx context.Context, today time.Time) ([]RowResult, Summary, error) {
	overdue, err := j.bookings.ListOverdueCheckedIn(ctx, today)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("list overdue stays: %w", err)
	}

	rows := make([]RowResult, 0, len(overdue))
	for _, b := range overdue {
		row := RowResult{ID: b.ID, Outcome: OutcomeSuccess}

		if err := j.bookings.UpdateStatus(ctx, b.ID, domain.BookingCheckedOut); err != nil {
			row.Outcome = OutcomeFailed
			row.Detail = err.Error()
			j.log.Error("auto-checkout failed",
				zap.Int64("booking_id", b.ID), zap.Error(err))
		} else {
			if b.RoomID != nil {
				if err := j.rooms.UpdateStatus(ctx, *b.RoomID, domain.RoomAvailable); err != nil {
					j.log.Error("room release failed after auto-checkout",
						zap.Int64("room_id", *b.RoomID), zap.Error(err))
					row.Detail = "checked out, room release failed"
				}
			}
			j.log.Info("booking auto-checked-out", zap.Int64("booking_id", b.ID))
		}

		metrics.SchedulerRows.WithLabelValues("auto_checkout", string(row.Outcome)).Inc()
		rows = append(rows, row)
	}
	return rows, summarize(rows), nil
}
