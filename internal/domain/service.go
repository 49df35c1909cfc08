package domain

import "time"

// ServiceCatalog is a billable extra (laundry, minibar, spa).
type ServiceCatalog struct {
	ID        int64
	Name      string
	UnitPrice float64
}

// ServiceUsage records one consumption of a catalog service by a booking.
// UnitPriceAtUse is captured at time of use and never recomputed from the
// catalog later.
type ServiceUsage struct {
	ID             int64
	BookingID      int64
	ServiceID      int64
	Qty            float64
	UnitPriceAtUse float64
	UsedOn         time.Time
}
