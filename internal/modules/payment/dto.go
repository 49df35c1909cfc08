package payment

import (
	"time"

	"skynest/internal/domain"
	"skynest/internal/pkg/money"
)

// CreatePaymentRequest records a guest payment. paid_at (RFC 3339) or
// paid_on (YYYY-MM-DD) pin the payment moment for backdated entries;
// when both are absent the current time is used.
type CreatePaymentRequest struct {
	BookingID int64   `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Method    string  `json:"method" binding:"required"`
	PaidAt    string  `json:"paid_at"`
	PaidOn    string  `json:"paid_on"`
	Reference string  `json:"payment_reference"`
	Note      string  `json:"note"`
}

// CreateAdjustmentRequest appends a correction entry. Type is optional:
// a negative amount with no type becomes a refund (stored positive), a
// positive one becomes a manual adjustment. Refund and chargeback
// amounts must be positive when the type is spelled out; manual
// adjustments keep their own sign and are stored as sent.
type CreateAdjustmentRequest struct {
	BookingID int64   `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Type      string  `json:"type"`
	Reason    string  `json:"reason"`
}

type PaymentResponse struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"booking_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	PaidAt    string `json:"paid_at"`
	Reference string `json:"payment_reference,omitempty"`
	Note      string `json:"note,omitempty"`
}

type AdjustmentResponse struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"booking_id"`
	Amount    string `json:"amount"`
	Type      string `json:"type"`
	Reason    string `json:"reason,omitempty"`
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		Amount:    money.Format(p.Amount),
		Method:    string(p.Method),
		PaidAt:    p.PaidAt.UTC().Format(time.RFC3339),
		Reference: p.PaymentReference,
		Note:      p.Note,
	}
}

func toAdjustmentResponse(a *domain.PaymentAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:        a.ID,
		BookingID: a.BookingID,
		Amount:    money.Format(a.Amount),
		Type:      string(a.Type),
		Reason:    a.Reason,
	}
}
