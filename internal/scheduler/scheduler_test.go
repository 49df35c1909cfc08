package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"skynest/internal/domain"
	"skynest/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPreBookingStore struct {
	mock.Mock
}

func (m *MockPreBookingStore) ListExpiredPending(ctx context.Context, today time.Time) ([]domain.PreBooking, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PreBooking), args.Error(1)
}

func (m *MockPreBookingStore) ListConvertible(ctx context.Context, targetCheckIn, today time.Time) ([]domain.PreBooking, error) {
	args := m.Called(ctx, targetCheckIn, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PreBooking), args.Error(1)
}

func (m *MockPreBookingStore) UpdateStatus(ctx context.Context, id int64, status domain.PreBookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockBookingStore struct {
	mock.Mock

	converted []*domain.Booking
}

func (m *MockBookingStore) ConvertPreBooking(ctx context.Context, preBookingID int64, bs []*domain.Booking) error {
	args := m.Called(ctx, preBookingID, bs)
	if args.Error(0) == nil {
		m.converted = append(m.converted, bs...)
	}
	return args.Error(0)
}

func (m *MockBookingStore) ListOverdueCheckedIn(ctx context.Context, today time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomType), args.Error(1)
}

func (m *MockRoomStore) FreeRooms(ctx context.Context, q repository.FreeRoomQuery) ([]repository.FreeRoom, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.FreeRoom), args.Error(1)
}

func (m *MockRoomStore) ReleaseHeld(ctx context.Context, preBookingID int64) (int64, error) {
	args := m.Called(ctx, preBookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomStore) UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func pending(id int64, autoCancel string) domain.PreBooking {
	d := day(autoCancel)
	return domain.PreBooking{
		ID:             id,
		CustomerID:     1,
		RoomTypeID:     2,
		Status:         domain.PreBookingPending,
		NumberOfRooms:  1,
		AutoCancelDate: &d,
	}
}

func TestAutoCancel(t *testing.T) {
	preBookings := new(MockPreBookingStore)
	preBookings.On("ListExpiredPending", mock.Anything, mock.Anything).Return([]domain.PreBooking{
		pending(1, "2026-05-01"),
		pending(2, "2026-05-02"),
	}, nil)
	preBookings.On("UpdateStatus", mock.Anything, int64(1), domain.PreBookingCancelled).Return(nil)
	preBookings.On("UpdateStatus", mock.Anything, int64(2), domain.PreBookingCancelled).Return(nil)

	rooms := new(MockRoomStore)
	rooms.On("ReleaseHeld", mock.Anything, int64(1)).Return(int64(1), nil)
	rooms.On("ReleaseHeld", mock.Anything, int64(2)).Return(int64(1), nil)

	job := NewAutoCancel(preBookings, rooms, zap.NewNop())
	rows, summary, err := job.Run(context.Background(), day("2026-05-10"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 2, Succeeded: 2}, summary)
	require.Len(t, rows, 2)
	preBookings.AssertExpectations(t)
	rooms.AssertExpectations(t)
}

func TestAutoCancelContinuesPastFailures(t *testing.T) {
	preBookings := new(MockPreBookingStore)
	preBookings.On("ListExpiredPending", mock.Anything, mock.Anything).Return([]domain.PreBooking{
		pending(1, "2026-05-01"),
		pending(2, "2026-05-01"),
		pending(3, "2026-05-01"),
	}, nil)
	preBookings.On("UpdateStatus", mock.Anything, int64(1), domain.PreBookingCancelled).Return(nil)
	preBookings.On("UpdateStatus", mock.Anything, int64(2), domain.PreBookingCancelled).Return(errors.New("deadlock"))
	preBookings.On("UpdateStatus", mock.Anything, int64(3), domain.PreBookingCancelled).Return(nil)

	rooms := new(MockRoomStore)
	rooms.On("ReleaseHeld", mock.Anything, mock.Anything).Return(int64(0), nil)

	job := NewAutoCancel(preBookings, rooms, zap.NewNop())
	rows, summary, err := job.Run(context.Background(), day("2026-05-10"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 3, Succeeded: 2, Failed: 1}, summary)
	assert.Equal(t, OutcomeFailed, rows[1].Outcome)
	preBookings.AssertExpectations(t)
}

func TestAutoCancelReleaseFailureLeavesRowPending(t *testing.T) {
	preBookings := new(MockPreBookingStore)
	preBookings.On("ListExpiredPending", mock.Anything, mock.Anything).Return([]domain.PreBooking{
		pending(1, "2026-05-01"),
	}, nil)

	rooms := new(MockRoomStore)
	rooms.On("ReleaseHeld", mock.Anything, int64(1)).Return(int64(0), errors.New("connection reset"))

	job := NewAutoCancel(preBookings, rooms, zap.NewNop())
	rows, summary, err := job.Run(context.Background(), day("2026-05-10"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 1, Failed: 1}, summary)
	assert.Equal(t, OutcomeFailed, rows[0].Outcome)

	// The row stays Pending so the next run retries the release; a
	// Cancelled row with Reserved rooms would never be revisited.
	preBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, int64(1), domain.PreBookingCancelled)
}

func convertibleGroup(id int64, roomCount int) domain.PreBooking {
	p := pending(id, "2026-05-08")
	p.ExpectedCheckIn = day("2026-05-17")
	p.ExpectedCheckOut = day("2026-05-19")
	p.NumberOfRooms = roomCount
	return p
}

func TestAutoConvert(t *testing.T) {
	preBookings := new(MockPreBookingStore)
	preBookings.On("ListConvertible", mock.Anything, day("2026-05-17"), day("2026-05-10")).
		Return([]domain.PreBooking{convertibleGroup(5, 2)}, nil)

	bookings := new(MockBookingStore)
	bookings.On("ConvertPreBooking", mock.Anything, int64(5), mock.Anything).Return(nil)

	rooms := new(MockRoomStore)
	rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 8000}, nil)
	rooms.On("FreeRooms", mock.Anything, mock.Anything).Return([]repository.FreeRoom{{RoomID: 11}, {RoomID: 12}}, nil)
	rooms.On("ReleaseHeld", mock.Anything, int64(5)).Return(int64(2), nil)

	customers := new(MockCustomerStore)
	customers.On("GetCustomer", mock.Anything, int64(1)).Return(&domain.Customer{ID: 1, GuestID: 101}, nil)

	job := NewAutoConvert(preBookings, bookings, rooms, customers, zap.NewNop())
	rows, summary, err := job.Run(context.Background(), day("2026-05-10"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 1, Succeeded: 1}, summary)
	require.Len(t, rows, 1)
	assert.Equal(t, OutcomeSuccess, rows[0].Outcome)

	require.Len(t, bookings.converted, 2)
	for _, b := range bookings.converted {
		assert.Equal(t, domain.BookingBooked, b.Status)
		assert.Equal(t, 8000.0, b.BookedRate)
		assert.Zero(t, b.TaxRatePercent)
		assert.Zero(t, b.AdvancePayment)
		assert.True(t, b.IsGroupBooking)
		assert.Equal(t, "Auto-Group-5", b.GroupName)
		require.NotNil(t, b.PreBookingID)
		assert.Equal(t, int64(5), *b.PreBookingID)
		assert.Equal(t, int64(101), b.GuestID)
	}

	// The Converted flip rides inside ConvertPreBooking; a second,
	// separate status write would reopen the torn-state window.
	preBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	rooms.AssertExpectations(t)
}

func TestAutoConvertNotEnoughRoomsCancels(t *testing.T) {
	preBookings := new(MockPreBookingStore)
	preBookings.On("ListConvertible", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PreBooking{convertibleGroup(5, 2)}, nil)
	preBookings.On("UpdateStatus", mock.Anything, int64(5), domain.PreBookingCancelled).Return(nil)

	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 8000}, nil)
	rooms.On("FreeRooms", mock.Anything, mock.Anything).Return([]repository.FreeRoom{{RoomID: 11}}, nil)
	rooms.On("ReleaseHeld", mock.Anything, int64(5)).Return(int64(1), nil)

	customers := new(MockCustomerStore)
	customers.On("GetCustomer", mock.Anything, int64(1)).Return(&domain.Customer{ID: 1, GuestID: 101}, nil)

	job := NewAutoConvert(preBookings, bookings, rooms, customers, zap.NewNop())
	rows, summary, err := job.Run(context.Background(), day("2026-05-10"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 1, Failed: 1}, summary)
	assert.Equal(t, OutcomeFailed, rows[0].Outcome)

	bookings.AssertNotCalled(t, "ConvertPreBooking", mock.Anything, mock.Anything, mock.Anything)
	preBookings.AssertExpectations(t)
	rooms.AssertExpectations(t)
}

func TestAutoConvertTransactionFailureCancelsWithoutOrphans(t *testing.T) {
	preBookings := new(MockPreBookingStore)
	preBookings.On("ListConvertible", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PreBooking{convertibleGroup(5, 2)}, nil)
	preBookings.On("UpdateStatus", mock.Anything, int64(5), domain.PreBookingCancelled).Return(nil)

	bookings := new(MockBookingStore)
	bookings.On("ConvertPreBooking", mock.Anything, int64(5), mock.Anything).Return(repository.ErrRoomOverlap)

	rooms := new(MockRoomStore)
	rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 8000}, nil)
	rooms.On("FreeRooms", mock.Anything, mock.Anything).Return([]repository.FreeRoom{{RoomID: 11}, {RoomID: 12}}, nil)
	rooms.On("ReleaseHeld", mock.Anything, int64(5)).Return(int64(2), nil)

	customers := new(MockCustomerStore)
	customers.On("GetCustomer", mock.Anything, int64(1)).Return(&domain.Customer{ID: 1, GuestID: 101}, nil)

	job := NewAutoConvert(preBookings, bookings, rooms, customers, zap.NewNop())
	rows, summary, err := job.Run(context.Background(), day("2026-05-10"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 1, Failed: 1}, summary)
	assert.Equal(t, OutcomeFailed, rows[0].Outcome)

	// The rolled-back transaction leaves no booking rows, and the
	// pre-booking is marked Cancelled rather than left Pending to be
	// re-selected against its own inserts.
	assert.Empty(t, bookings.converted)
	preBookings.AssertExpectations(t)
}

func TestAutoConvertSingleRoomHasNoGroup(t *testing.T) {
	preBookings := new(MockPreBookingStore)
	preBookings.On("ListConvertible", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PreBooking{convertibleGroup(7, 1)}, nil)

	bookings := new(MockBookingStore)
	bookings.On("ConvertPreBooking", mock.Anything, int64(7), mock.Anything).Return(nil)

	rooms := new(MockRoomStore)
	rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 8000}, nil)
	rooms.On("FreeRooms", mock.Anything, mock.Anything).Return([]repository.FreeRoom{{RoomID: 11}}, nil)
	rooms.On("ReleaseHeld", mock.Anything, int64(7)).Return(int64(1), nil)

	customers := new(MockCustomerStore)
	customers.On("GetCustomer", mock.Anything, int64(1)).Return(&domain.Customer{ID: 1, GuestID: 101}, nil)

	job := NewAutoConvert(preBookings, bookings, rooms, customers, zap.NewNop())
	_, summary, err := job.Run(context.Background(), day("2026-05-10"))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	require.Len(t, bookings.converted, 1)
	assert.False(t, bookings.converted[0].IsGroupBooking)
	assert.Empty(t, bookings.converted[0].GroupName)
}

func TestAutoCheckout(t *testing.T) {
	roomID := int64(3)
	bookings := new(MockBookingStore)
	bookings.On("ListOverdueCheckedIn", mock.Anything, day("2026-05-10")).Return([]domain.Booking{
		{ID: 20, RoomID: &roomID, Status: domain.BookingCheckedIn, CheckOutDate: day("2026-05-09")},
	}, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(20), domain.BookingCheckedOut).Return(nil)

	rooms := new(MockRoomStore)
	rooms.On("UpdateStatus", mock.Anything, int64(3), domain.RoomAvailable).Return(nil)

	job := NewAutoCheckout(bookings, rooms, zap.NewNop())
	rows, summary, err := job.Run(context.Background(), day("2026-05-10"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Processed: 1, Succeeded: 1}, summary)
	require.Len(t, rows, 1)
	bookings.AssertExpectations(t)
	rooms.AssertExpectations(t)
}
