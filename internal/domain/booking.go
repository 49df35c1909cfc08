package domain

import (
	"fmt"
	"strings"
	"time"

	"skynest/internal/pkg/billing"
)

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	BookingBooked     BookingStatus = "Booked"
	BookingCheckedIn  BookingStatus = "Checked-In"
	BookingCheckedOut BookingStatus = "Checked-Out"
	BookingCancelled  BookingStatus = "Cancelled"
)

// validTransitions defines the state machine for booking status changes.
// A checked-in stay cannot be cancelled; it must be checked out.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingBooked:     {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn:  {BookingCheckedOut},
	BookingCheckedOut: {},
	BookingCancelled:  {},
}

// Blocks reports whether a booking in this status holds its room against
// overlapping date ranges. Cancelled and Checked-Out never block.
func (s BookingStatus) Blocks() bool {
	return s == BookingBooked || s == BookingCheckedIn
}

func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus accepts the loose forms the dashboard sends
// ("checked in", "Checked_In", "checked-in") and returns the enum value.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(norm)
	switch norm {
	case "booked":
		return BookingBooked, nil
	case "checkedin":
		return BookingCheckedIn, nil
	case "checkedout":
		return BookingCheckedOut, nil
	case "cancelled":
		return BookingCancelled, nil
	}
	return "", fmt.Errorf("invalid booking status: %q", raw)
}

// Booking is one room-night reservation row. A group booking is multiple
// rows sharing a GroupName. Rows are never deleted; status moves to
// Cancelled instead.
type Booking struct {
	ID           int64
	PreBookingID *int64
	GuestID      int64
	RoomID       *int64
	CheckInDate  time.Time
	CheckOutDate time.Time
	Status       BookingStatus

	BookedRate     float64
	TaxRatePercent float64
	DiscountAmount float64
	LateFeeAmount  float64
	AdvancePayment float64

	IsGroupBooking         bool
	GroupName              string
	PreferredPaymentMethod string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Charges extracts the billing-relevant fields.
func (b *Booking) Charges() billing.Charges {
	return billing.Charges{
		CheckIn:        b.CheckInDate,
		CheckOut:       b.CheckOutDate,
		BookedRate:     b.BookedRate,
		TaxRatePercent: b.TaxRatePercent,
		DiscountAmount: b.DiscountAmount,
		LateFeeAmount:  b.LateFeeAmount,
		AdvancePayment: b.AdvancePayment,
	}
}
