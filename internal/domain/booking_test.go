package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingBooked.CanTransitionTo(BookingCheckedIn))
	assert.True(t, BookingBooked.CanTransitionTo(BookingCancelled))
	assert.True(t, BookingCheckedIn.CanTransitionTo(BookingCheckedOut))

	// a checked-in stay cannot be silently erased
	assert.False(t, BookingCheckedIn.CanTransitionTo(BookingCancelled))
	assert.False(t, BookingCheckedOut.CanTransitionTo(BookingBooked))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingBooked))
	assert.False(t, BookingBooked.CanTransitionTo(BookingCheckedOut))
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingBooked.IsTerminal())
	assert.False(t, BookingCheckedIn.IsTerminal())
	assert.True(t, BookingCheckedOut.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
}

func TestBookingStatusBlocks(t *testing.T) {
	assert.True(t, BookingBooked.Blocks())
	assert.True(t, BookingCheckedIn.Blocks())
	assert.False(t, BookingCheckedOut.Blocks())
	assert.False(t, BookingCancelled.Blocks())
}

func TestParseBookingStatus(t *testing.T) {
	for _, raw := range []string{"checked in", "Checked_In", "checked-in", "CHECKEDIN"} {
		got, err := ParseBookingStatus(raw)
		assert.NoError(t, err)
		assert.Equal(t, BookingCheckedIn, got)
	}

	got, err := ParseBookingStatus(" booked ")
	assert.NoError(t, err)
	assert.Equal(t, BookingBooked, got)

	_, err = ParseBookingStatus("sleeping")
	assert.Error(t, err)
}

func TestNormalizePaymentMethod(t *testing.T) {
	assert.Equal(t, MethodCash, NormalizePaymentMethod(" cash "))
	assert.Equal(t, MethodCard, NormalizePaymentMethod("CARD"))
	assert.Equal(t, MethodOnline, NormalizePaymentMethod("online"))
	assert.Equal(t, PaymentMethod(""), NormalizePaymentMethod("barter"))
}
