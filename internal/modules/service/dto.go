package service

import (
	"skynest/internal/domain"
	"skynest/internal/pkg/dates"
	"skynest/internal/pkg/money"
)

// RecordUsageRequest charges a catalog service to a booking. unit_price,
// when set, overrides the catalog price for this line only.
type RecordUsageRequest struct {
	BookingID int64    `json:"booking_id" binding:"required"`
	ServiceID int64    `json:"service_id" binding:"required"`
	Quantity  float64  `json:"quantity" binding:"required"`
	UnitPrice *float64 `json:"unit_price"`
	UsedOn    string   `json:"used_on"`
}

type UsageResponse struct {
	ID        int64   `json:"id"`
	BookingID int64   `json:"booking_id"`
	ServiceID int64   `json:"service_id"`
	Quantity  float64 `json:"quantity"`
	UnitPrice string  `json:"unit_price"`
	Total     string  `json:"total"`
	UsedOn    string  `json:"used_on"`
}

type CatalogResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
}

func toUsageResponse(u *domain.ServiceUsage) UsageResponse {
	return UsageResponse{
		ID:        u.ID,
		BookingID: u.BookingID,
		ServiceID: u.ServiceID,
		Quantity:  u.Qty,
		UnitPrice: money.Format(u.UnitPriceAtUse),
		Total:     money.Format(u.Qty * u.UnitPriceAtUse),
		UsedOn:    dates.Format(u.UsedOn),
	}
}
