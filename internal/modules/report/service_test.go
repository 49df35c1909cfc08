package report

import (
	"context"
	"testing"
	"time"

	"skynest/internal/domain"
	"skynest/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBookings struct {
	rows    []domain.Booking
	ledgers map[int64]repository.LedgerTotals
}

func (f *fakeBookings) ListBetween(_ context.Context, _, _ time.Time) ([]domain.Booking, error) {
	return f.rows, nil
}

func (f *fakeBookings) AggregateLedgers(_ context.Context, id int64) (repository.LedgerTotals, error) {
	return f.ledgers[id], nil
}

type fakeRooms struct {
	counts map[domain.RoomStatus]int64
}

func (f *fakeRooms) CountByStatus(_ context.Context) (map[domain.RoomStatus]int64, error) {
	return f.counts, nil
}

func TestOccupancy(t *testing.T) {
	rooms := &fakeRooms{counts: map[domain.RoomStatus]int64{
		domain.RoomAvailable:   5,
		domain.RoomReserved:    2,
		domain.RoomOccupied:    3,
		domain.RoomMaintenance: 2,
	}}
	svc := NewService(&fakeBookings{}, rooms, zap.NewNop())

	o, err := svc.Occupancy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), o.TotalRooms)
	// 3 occupied out of 10 sellable rooms.
	assert.Equal(t, "30.00", o.OccupancyRate)
}

func TestOccupancyNoRooms(t *testing.T) {
	svc := NewService(&fakeBookings{}, &fakeRooms{counts: map[domain.RoomStatus]int64{}}, zap.NewNop())

	o, err := svc.Occupancy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.00", o.OccupancyRate)
}

func TestBillingSummary(t *testing.T) {
	checkIn := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	bookings := &fakeBookings{
		rows: []domain.Booking{
			{ID: 1, GuestID: 9, CheckInDate: checkIn, CheckOutDate: checkOut, Status: domain.BookingCheckedOut, BookedRate: 10000, TaxRatePercent: 10},
			{ID: 2, GuestID: 9, CheckInDate: checkIn, CheckOutDate: checkOut, Status: domain.BookingBooked, BookedRate: 5000},
		},
		ledgers: map[int64]repository.LedgerTotals{
			1: {ServicesTotal: 2000, PaymentsTotal: 24200},
			2: {},
		},
	}
	svc := NewService(bookings, &fakeRooms{counts: map[domain.RoomStatus]int64{}}, zap.NewNop())

	summary, err := svc.BillingSummaryBetween(context.Background(), checkIn, checkOut)
	require.NoError(t, err)
	require.Len(t, summary.Bookings, 2)

	// Booking 1: (2x10000 + 2000) * 1.10 = 24200 gross, fully paid.
	assert.Equal(t, "24200.00", summary.Bookings[0].GrossTotal)
	assert.Equal(t, "0.00", summary.Bookings[0].Balance)

	// Booking 2: 2x5000, no tax, nothing paid.
	assert.Equal(t, "10000.00", summary.Bookings[1].GrossTotal)
	assert.Equal(t, "10000.00", summary.Bookings[1].Balance)

	assert.Equal(t, "34200.00", summary.TotalGross)
	assert.Equal(t, "10000.00", summary.TotalBalance)
}
