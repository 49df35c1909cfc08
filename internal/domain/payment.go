package domain

import (
	"strings"
	"time"
)

// PaymentMethod is the normalized payment channel.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "Cash"
	MethodCard   PaymentMethod = "Card"
	MethodOnline PaymentMethod = "Online"
)

// NormalizePaymentMethod maps loose input ("cash", "CARD") to the enum;
// empty result means unrecognized.
func NormalizePaymentMethod(raw string) PaymentMethod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cash":
		return MethodCash
	case "card":
		return MethodCard
	case "online":
		return MethodOnline
	}
	return ""
}

// Payment is an append-only ledger entry against a booking.
type Payment struct {
	ID               int64
	BookingID        int64
	Amount           float64
	Method           PaymentMethod
	PaidAt           time.Time
	PaymentReference string
	Note             string
}

// AdjustmentType determines the sign semantics in the balance formula:
// refund and chargeback amounts are stored positive and raise the balance;
// manual adjustments carry their own sign and lower it.
type AdjustmentType string

const (
	AdjustmentRefund     AdjustmentType = "refund"
	AdjustmentChargeback AdjustmentType = "chargeback"
	AdjustmentManual     AdjustmentType = "manual_adjustment"
)

func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentRefund, AdjustmentChargeback, AdjustmentManual:
		return true
	}
	return false
}

// PaymentAdjustment is an append-only correction entry. Refund and
// chargeback amounts are stored positive; manual adjustments keep the
// sign they were entered with.
type PaymentAdjustment struct {
	ID        int64
	BookingID int64
	Amount    float64
	Type      AdjustmentType
	Reason    string
	CreatedAt time.Time
}
