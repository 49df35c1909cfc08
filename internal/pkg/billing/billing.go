// Package billing computes a booking's financial breakdown.
//
// The step order is load-bearing: discount and late fee apply before tax,
// and the adjustment sign rules are asymmetric by type. Changing either
// changes every balance in the system.
package billing

import (
	"time"

	"skynest/internal/pkg/dates"
	"skynest/internal/pkg/money"
)

// Charges is the billing-relevant slice of a booking row.
type Charges struct {
	CheckIn        time.Time
	CheckOut       time.Time
	BookedRate     float64
	TaxRatePercent float64
	DiscountAmount float64
	LateFeeAmount  float64
	AdvancePayment float64
}

type ServiceLine struct {
	Qty            float64
	UnitPriceAtUse float64
}

type PaymentLine struct {
	Amount float64
}

// Adjustment type values mirror the payment_adjustment enum.
const (
	AdjustmentRefund     = "refund"
	AdjustmentChargeback = "chargeback"
	AdjustmentManual     = "manual_adjustment"
)

type AdjustmentLine struct {
	Amount float64
	Type   string
}

// Totals is the numeric breakdown. View renders the display form.
type Totals struct {
	Nights           int
	RoomSubtotal     float64
	ServicesSubtotal float64
	PreTaxSubtotal   float64
	Tax              float64
	TaxRate          float64
	GrossTotal       float64
	PaymentsTotal    float64
	AdjustmentsTotal float64
	Advance          float64
	Balance          float64
}

// View is Totals with every money field formatted to two decimals.
type View struct {
	Nights           int    `json:"nights"`
	RoomSubtotal     string `json:"room_subtotal"`
	ServicesSubtotal string `json:"services_subtotal"`
	PreTaxSubtotal   string `json:"pre_tax_subtotal"`
	Tax              string `json:"tax"`
	TaxRate          string `json:"tax_rate"`
	GrossTotal       string `json:"gross_total"`
	PaymentsTotal    string `json:"payments_total"`
	AdjustmentsTotal string `json:"adjustments_total"`
	Advance          string `json:"advance"`
	Balance          string `json:"balance"`
}

// Calculate produces the full breakdown for one booking and its ledgers.
// Malformed numeric input has already degraded to zero at the parsing edge;
// this function never fails.
func Calculate(c Charges, services []ServiceLine, payments []PaymentLine, adjustments []AdjustmentLine) Totals {
	nights := dates.Nights(c.CheckIn, c.CheckOut)

	roomSubtotal := float64(nights) * c.BookedRate

	var servicesSubtotal float64
	for _, s := range services {
		servicesSubtotal += s.Qty * s.UnitPriceAtUse
	}

	var paymentsTotal float64
	for _, p := range payments {
		paymentsTotal += p.Amount
	}

	var adjustmentsTotal float64
	for _, a := range adjustments {
		// Refunds and chargebacks reduce what the hotel keeps, so their
		// positive amounts raise the balance. Manual adjustments carry
		// their own sign and move the balance the other way.
		if a.Type == AdjustmentRefund || a.Type == AdjustmentChargeback {
			adjustmentsTotal += a.Amount
		} else {
			adjustmentsTotal -= a.Amount
		}
	}

	return assemble(c, nights, roomSubtotal, servicesSubtotal, paymentsTotal, adjustmentsTotal)
}

// QuickTotals applies the identical formula to pre-aggregated sums. Report
// queries that already hold SQL totals use this to avoid re-walking line
// items; it must agree bit-for-bit with Calculate on equivalent input.
func QuickTotals(c Charges, servicesTotal, paymentsTotal, adjustmentsTotal float64) Totals {
	nights := dates.Nights(c.CheckIn, c.CheckOut)
	roomSubtotal := float64(nights) * c.BookedRate
	return assemble(c, nights, roomSubtotal, servicesTotal, paymentsTotal, adjustmentsTotal)
}

// QuickBalance is QuickTotals reduced to the final balance.
func QuickBalance(c Charges, servicesTotal, paymentsTotal, adjustmentsTotal float64) float64 {
	return QuickTotals(c, servicesTotal, paymentsTotal, adjustmentsTotal).Balance
}

func assemble(c Charges, nights int, roomSubtotal, servicesSubtotal, paymentsTotal, adjustmentsTotal float64) Totals {
	preTax := roomSubtotal + servicesSubtotal - c.DiscountAmount + c.LateFeeAmount
	tax := preTax * (c.TaxRatePercent / 100)
	gross := preTax + tax
	balance := gross - (paymentsTotal + c.AdvancePayment) + adjustmentsTotal

	return Totals{
		Nights:           nights,
		RoomSubtotal:     roomSubtotal,
		ServicesSubtotal: servicesSubtotal,
		PreTaxSubtotal:   preTax,
		Tax:              tax,
		TaxRate:          c.TaxRatePercent,
		GrossTotal:       gross,
		PaymentsTotal:    paymentsTotal,
		AdjustmentsTotal: adjustmentsTotal,
		Advance:          c.AdvancePayment,
		Balance:          balance,
	}
}

func (t Totals) View() View {
	return View{
		Nights:           t.Nights,
		RoomSubtotal:     money.Format(t.RoomSubtotal),
		ServicesSubtotal: money.Format(t.ServicesSubtotal),
		PreTaxSubtotal:   money.Format(t.PreTaxSubtotal),
		Tax:              money.Format(t.Tax),
		TaxRate:          money.Format(t.TaxRate),
		GrossTotal:       money.Format(t.GrossTotal),
		PaymentsTotal:    money.Format(t.PaymentsTotal),
		AdjustmentsTotal: money.Format(t.AdjustmentsTotal),
		Advance:          money.Format(t.Advance),
		Balance:          money.Format(t.Balance),
	}
}
