package events

import (
	"context"

	"skynest/internal/domain"
	"skynest/internal/modules/housekeeping"
)

// HousekeepingBridge forwards booking lifecycle events to the live
// dashboard feed alongside whatever broker publisher is active.
type HousekeepingBridge struct {
	handler *housekeeping.Handler
}

func NewHousekeepingBridge(h *housekeeping.Handler) *HousekeepingBridge {
	return &HousekeepingBridge{handler: h}
}

func (b *HousekeepingBridge) BookingCreated(_ context.Context, booking *domain.Booking) {
	b.handler.NotifyBookingStatus(booking.ID, booking.Status)
}

func (b *HousekeepingBridge) BookingStatusChanged(_ context.Context, booking *domain.Booking, _, to domain.BookingStatus) {
	b.handler.NotifyBookingStatus(booking.ID, to)
	if booking.RoomID == nil {
		return
	}
	switch to {
	case domain.BookingCheckedIn:
		b.handler.NotifyRoomStatus(*booking.RoomID, domain.RoomOccupied)
	case domain.BookingCheckedOut, domain.BookingCancelled:
		b.handler.NotifyRoomStatus(*booking.RoomID, domain.RoomAvailable)
	}
}
