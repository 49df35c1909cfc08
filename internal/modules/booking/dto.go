package booking

import "skynest/internal/pkg/billing"

// CreateBookingRequest books one room, or several when is_group_booking
// is set. Dates are YYYY-MM-DD; the stay is the half-open range
// [check_in_date, check_out_date). Individual bookings name a room_id;
// group bookings name a room_type_id and room_quantity instead.
type CreateBookingRequest struct {
	GuestID                int64   `json:"guest_id" binding:"required"`
	RoomID                 int64   `json:"room_id"`
	RoomTypeID             int64   `json:"room_type_id"`
	RoomQuantity           int     `json:"room_quantity"`
	IsGroupBooking         bool    `json:"is_group_booking"`
	CheckInDate            string  `json:"check_in_date" binding:"required"`
	CheckOutDate           string  `json:"check_out_date" binding:"required"`
	BookedRate             float64 `json:"booked_rate"`
	TaxRatePercent         float64 `json:"tax_rate_percent"`
	DiscountAmount         float64 `json:"discount_amount"`
	LateFeeAmount          float64 `json:"late_fee_amount"`
	AdvancePayment         float64 `json:"advance_payment"`
	PreferredPaymentMethod string  `json:"preferred_payment_method"`
	GroupName              string  `json:"group_name"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingResponse is the wire shape of one booking row.
type BookingResponse struct {
	ID                     int64  `json:"id"`
	PreBookingID           *int64 `json:"pre_booking_id,omitempty"`
	GuestID                int64  `json:"guest_id"`
	RoomID                 *int64 `json:"room_id"`
	CheckInDate            string `json:"check_in_date"`
	CheckOutDate           string `json:"check_out_date"`
	Status                 string `json:"status"`
	BookedRate             string `json:"booked_rate"`
	AdvancePayment         string `json:"advance_payment"`
	IsGroupBooking         bool   `json:"is_group_booking"`
	GroupName              string `json:"group_name,omitempty"`
	PreferredPaymentMethod string `json:"preferred_payment_method,omitempty"`
}

// GroupBookingResponse summarizes the rows created for one group.
type GroupBookingResponse struct {
	GroupName string            `json:"group_name"`
	Bookings  []BookingResponse `json:"bookings"`
}

// FullBookingResponse is the folio view: the booking plus its ledgers and
// the computed financial breakdown.
type FullBookingResponse struct {
	Booking     BookingResponse       `json:"booking"`
	Services    []ServiceLineResponse `json:"services"`
	Payments    []PaymentResponse     `json:"payments"`
	Adjustments []AdjustmentResponse  `json:"adjustments"`
	Totals      billing.View          `json:"totals"`
}

type ServiceLineResponse struct {
	ID        int64   `json:"id"`
	ServiceID int64   `json:"service_id"`
	Quantity  float64 `json:"quantity"`
	UnitPrice string  `json:"unit_price"`
	UsedOn    string  `json:"used_on"`
}

type PaymentResponse struct {
	ID        int64  `json:"id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	PaidAt    string `json:"paid_at"`
	Reference string `json:"payment_reference,omitempty"`
}

type AdjustmentResponse struct {
	ID     int64  `json:"id"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}
