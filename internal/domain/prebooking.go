package domain

import "time"

// PreBookingStatus transitions Pending -> Converted (via booking creation)
// or Pending -> Cancelled (via scheduler); both are terminal.
type PreBookingStatus string

const (
	PreBookingPending   PreBookingStatus = "Pending"
	PreBookingConfirmed PreBookingStatus = "Confirmed"
	PreBookingConverted PreBookingStatus = "Converted"
	PreBookingCancelled PreBookingStatus = "Cancelled"
)

// PreBooking is a tentative hold placed at guest-inquiry time.
type PreBooking struct {
	ID               int64
	Code             string
	CustomerID       int64
	RoomTypeID       int64
	ExpectedCheckIn  time.Time
	ExpectedCheckOut time.Time
	NumberOfRooms    int
	Status           PreBookingStatus
	GroupName        string

	// AutoCancelDate is the deadline after which an unconverted hold is
	// eligible for automatic cancellation. Nullable: no deadline, no
	// auto-cancel.
	AutoCancelDate *time.Time

	CreatedAt time.Time
}
