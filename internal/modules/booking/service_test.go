package booking

import (
	"context"
	"testing"
	"time"

	"skynest/internal/domain"
	"skynest/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) CreateGroup(ctx context.Context, bs []*domain.Booking) error {
	args := m.Called(ctx, bs)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) AggregateLedgers(ctx context.Context, bookingID int64) (repository.LedgerTotals, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(repository.LedgerTotals), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomType), args.Error(1)
}

func (m *MockRoomRepository) FreeRooms(ctx context.Context, q repository.FreeRoomQuery) ([]repository.FreeRoom, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.FreeRoom), args.Error(1)
}

func (m *MockRoomRepository) UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

type MockGuestRepository struct {
	mock.Mock
}

func (m *MockGuestRepository) GetGuest(ctx context.Context, id int64) (*domain.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Guest), args.Error(1)
}

// MockLedgerRepository serves both the payment and the service-usage
// ledger reads the folio view needs.
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockLedgerRepository) ListAdjustmentsByBooking(ctx context.Context, bookingID int64) ([]domain.PaymentAdjustment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAdjustment), args.Error(1)
}

func (m *MockLedgerRepository) ListUsageByBooking(ctx context.Context, bookingID int64) ([]domain.ServiceUsage, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceUsage), args.Error(1)
}

type serviceMocks struct {
	bookings *MockBookingRepository
	rooms    *MockRoomRepository
	guests   *MockGuestRepository
	ledgers  *MockLedgerRepository
}

func newTestService() (*Service, serviceMocks) {
	m := serviceMocks{
		bookings: new(MockBookingRepository),
		rooms:    new(MockRoomRepository),
		guests:   new(MockGuestRepository),
		ledgers:  new(MockLedgerRepository),
	}
	svc := NewService(m.bookings, m.rooms, m.guests, m.ledgers, m.ledgers, nil, zap.NewNop())
	return svc, m
}

func knownGuest(m serviceMocks) {
	m.guests.On("GetGuest", mock.Anything, int64(1)).Return(&domain.Guest{ID: 1, FullName: "Test Guest"}, nil)
}

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		GuestID:        1,
		RoomID:         7,
		CheckInDate:    "2026-04-01",
		CheckOutDate:   "2026-04-03",
		BookedRate:     12000,
		TaxRatePercent: 10,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, RoomTypeID: 2, Status: domain.RoomAvailable}, nil)
	m.bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).Return(nil, nil)
	m.bookings.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Booking).ID = 101
	}).Return(nil)

	b, err := svc.CreateBooking(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(101), b.ID)
	assert.Equal(t, domain.BookingBooked, b.Status)
	assert.Equal(t, 12000.0, b.BookedRate)
	require.NotNil(t, b.RoomID)
	assert.Equal(t, int64(7), *b.RoomID)

	// Creating a booking never touches room status; that happens at check-in.
	m.rooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	m.bookings.AssertExpectations(t)
}

func TestCreateBookingDefaultsRateFromRoomType(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, RoomTypeID: 2}, nil)
	m.rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 9500}, nil)
	m.bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).Return(nil, nil)
	m.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := validCreateRequest()
	req.BookedRate = 0
	b, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 9500.0, b.BookedRate)
}

func TestCreateBookingConflictCarriesSuggestions(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, RoomTypeID: 2}, nil)
	m.bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{{ID: 3, Status: domain.BookingBooked}}, nil)
	m.rooms.On("FreeRooms", mock.Anything, mock.MatchedBy(func(q repository.FreeRoomQuery) bool {
		return q.RoomTypeID == 2 && q.ExcludeRoomID == 7 && q.Limit == 5
	})).Return([]repository.FreeRoom{{RoomID: 8, RoomNumber: "102"}}, nil)

	_, err := svc.CreateBooking(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrNotAvailable)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(7), conflict.RoomID)
	require.Len(t, conflict.Suggestions, 1)
	assert.Equal(t, int64(8), conflict.Suggestions[0].RoomID)
	m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingLostRaceMapsToConflict(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, RoomTypeID: 2}, nil)
	m.bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).Return(nil, nil)
	m.bookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrRoomOverlap)
	m.rooms.On("FreeRooms", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.CreateBooking(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrNotAvailable)

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCreateBookingAdvanceFloor(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, RoomTypeID: 2}, nil)
	m.bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).Return(nil, nil)
	m.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	// 2 nights x 12000 = 24000 gross room charge; floor is 2400.
	req := validCreateRequest()
	req.AdvancePayment = 2399
	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrAdvanceTooLow)

	req.AdvancePayment = 2400
	_, err = svc.CreateBooking(context.Background(), req)
	assert.NoError(t, err)

	// Zero advance means no advance taken; the floor does not apply.
	req.AdvancePayment = 0
	_, err = svc.CreateBooking(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateBookingUnknownGuest(t *testing.T) {
	svc, m := newTestService()
	m.guests.On("GetGuest", mock.Anything, int64(999)).Return(nil, repository.ErrNotFound)

	req := validCreateRequest()
	req.GuestID = 999
	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	svc, _ := newTestService()

	for _, tc := range []struct{ in, out string }{
		{"2026-04-03", "2026-04-01"},
		{"2026-04-01", "2026-04-01"},
		{"not-a-date", "2026-04-03"},
	} {
		req := validCreateRequest()
		req.CheckInDate, req.CheckOutDate = tc.in, tc.out
		_, err := svc.CreateBooking(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation, "in=%s out=%s", tc.in, tc.out)
	}
}

func validGroupRequest(quantity int) CreateBookingRequest {
	return CreateBookingRequest{
		GuestID:        1,
		RoomTypeID:     2,
		RoomQuantity:   quantity,
		IsGroupBooking: true,
		CheckInDate:    "2026-04-01",
		CheckOutDate:   "2026-04-03",
	}
}

func TestCreateGroupBooking(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 10000}, nil)
	m.rooms.On("FreeRooms", mock.Anything, mock.Anything).
		Return([]repository.FreeRoom{{RoomID: 11}, {RoomID: 12}, {RoomID: 13}}, nil)
	m.bookings.On("CreateGroup", mock.Anything, mock.Anything).Return(nil)

	req := validGroupRequest(3)
	req.AdvancePayment = 6000 // floor: 3 rooms x 2 nights x 10000 x 10% = 6000
	bs, err := svc.CreateGroupBooking(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, bs, 3)

	groupName := bs[0].GroupName
	assert.NotEmpty(t, groupName)
	for _, b := range bs {
		assert.True(t, b.IsGroupBooking)
		assert.Equal(t, groupName, b.GroupName)
		assert.Equal(t, 10000.0, b.BookedRate)
		assert.InDelta(t, 2000.0, b.AdvancePayment, 1e-9)
	}
}

func TestCreateGroupBookingShortageCarriesCounts(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 10000}, nil)
	m.rooms.On("FreeRooms", mock.Anything, mock.Anything).Return([]repository.FreeRoom{{RoomID: 11}}, nil)

	_, err := svc.CreateGroupBooking(context.Background(), validGroupRequest(2))
	assert.ErrorIs(t, err, ErrNotEnoughRooms)

	var shortage *ShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 2, shortage.Requested)
	assert.Equal(t, 1, shortage.Free)
	m.bookings.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything)
}

func TestCreateGroupBookingLostRaceRecountsShortfall(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 10000}, nil)
	m.rooms.On("FreeRooms", mock.Anything, mock.Anything).
		Return([]repository.FreeRoom{{RoomID: 11}, {RoomID: 12}}, nil).Once()
	m.bookings.On("CreateGroup", mock.Anything, mock.Anything).Return(repository.ErrRoomOverlap)
	// The recount after the lost race sees only one room left.
	m.rooms.On("FreeRooms", mock.Anything, mock.Anything).
		Return([]repository.FreeRoom{{RoomID: 12}}, nil).Once()

	_, err := svc.CreateGroupBooking(context.Background(), validGroupRequest(2))
	assert.ErrorIs(t, err, ErrNotEnoughRooms)

	var shortage *ShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, 2, shortage.Requested)
	assert.Equal(t, 1, shortage.Free)
}

func TestCreateGroupBookingAdvanceFloorOverWholeGroup(t *testing.T) {
	svc, m := newTestService()
	knownGuest(m)
	m.rooms.On("GetRoomType", mock.Anything, int64(2)).Return(&domain.RoomType{ID: 2, DailyRate: 10000}, nil)
	m.rooms.On("FreeRooms", mock.Anything, mock.Anything).
		Return([]repository.FreeRoom{{RoomID: 11}, {RoomID: 12}}, nil)

	req := validGroupRequest(2)
	req.AdvancePayment = 3999 // floor is 4000 over the group
	_, err := svc.CreateGroupBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrAdvanceTooLow)
}

func seedBooking(status domain.BookingStatus) *domain.Booking {
	roomID := int64(7)
	return &domain.Booking{
		ID:           50,
		GuestID:      1,
		RoomID:       &roomID,
		CheckInDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

func TestChangeStatusCheckInOccupiesRoom(t *testing.T) {
	svc, m := newTestService()
	m.bookings.On("GetByID", mock.Anything, int64(50)).Return(seedBooking(domain.BookingBooked), nil)
	m.bookings.On("UpdateStatus", mock.Anything, int64(50), domain.BookingCheckedIn).Return(nil)
	m.rooms.On("UpdateStatus", mock.Anything, int64(7), domain.RoomOccupied).Return(nil)

	b, err := svc.ChangeStatus(context.Background(), 50, "Checked-In")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, b.Status)
	m.rooms.AssertExpectations(t)
}

func TestChangeStatusCheckOutFreesRoom(t *testing.T) {
	svc, m := newTestService()
	m.bookings.On("GetByID", mock.Anything, int64(50)).Return(seedBooking(domain.BookingCheckedIn), nil)
	m.bookings.On("UpdateStatus", mock.Anything, int64(50), domain.BookingCheckedOut).Return(nil)
	m.rooms.On("UpdateStatus", mock.Anything, int64(7), domain.RoomAvailable).Return(nil)

	b, err := svc.ChangeStatus(context.Background(), 50, "checked_out")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, b.Status)
	m.rooms.AssertExpectations(t)
}

func TestChangeStatusCancelReleasesReservedRoom(t *testing.T) {
	svc, m := newTestService()
	m.bookings.On("GetByID", mock.Anything, int64(50)).Return(seedBooking(domain.BookingBooked), nil)
	m.bookings.On("UpdateStatus", mock.Anything, int64(50), domain.BookingCancelled).Return(nil)
	m.rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, Status: domain.RoomReserved}, nil)
	m.rooms.On("UpdateStatus", mock.Anything, int64(7), domain.RoomAvailable).Return(nil)

	_, err := svc.ChangeStatus(context.Background(), 50, "Cancelled")
	require.NoError(t, err)
	m.rooms.AssertExpectations(t)
}

func TestChangeStatusCancelLeavesAvailableRoomAlone(t *testing.T) {
	svc, m := newTestService()
	m.bookings.On("GetByID", mock.Anything, int64(50)).Return(seedBooking(domain.BookingBooked), nil)
	m.bookings.On("UpdateStatus", mock.Anything, int64(50), domain.BookingCancelled).Return(nil)
	m.rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, Status: domain.RoomAvailable}, nil)

	_, err := svc.ChangeStatus(context.Background(), 50, "Cancelled")
	require.NoError(t, err)
	m.rooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatusRejectsIllegalTransitions(t *testing.T) {
	for _, tc := range []struct {
		from   domain.BookingStatus
		target string
	}{
		{domain.BookingCheckedIn, "Cancelled"},
		{domain.BookingCheckedOut, "Checked-In"},
		{domain.BookingCancelled, "Booked"},
		{domain.BookingBooked, "Checked-Out"},
	} {
		svc, m := newTestService()
		m.bookings.On("GetByID", mock.Anything, int64(50)).Return(seedBooking(tc.from), nil)

		_, err := svc.ChangeStatus(context.Background(), 50, tc.target)
		var te *TransitionError
		require.ErrorAs(t, err, &te, "%s -> %s", tc.from, tc.target)
		assert.Equal(t, tc.from, te.From)
		m.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestGetFullComputesTotals(t *testing.T) {
	svc, m := newTestService()
	b := seedBooking(domain.BookingCheckedIn)
	b.BookedRate = 20000
	b.TaxRatePercent = 10
	b.DiscountAmount = 1000
	b.LateFeeAmount = 300
	b.AdvancePayment = 4000
	m.bookings.On("GetByID", mock.Anything, int64(50)).Return(b, nil)
	m.ledgers.On("ListUsageByBooking", mock.Anything, int64(50)).
		Return([]domain.ServiceUsage{{Qty: 2, UnitPriceAtUse: 1500}}, nil)
	m.ledgers.On("ListByBooking", mock.Anything, int64(50)).
		Return([]domain.Payment{{Amount: 10000, Method: domain.MethodCard}}, nil)
	m.ledgers.On("ListAdjustmentsByBooking", mock.Anything, int64(50)).
		Return([]domain.PaymentAdjustment{{Amount: 500, Type: domain.AdjustmentRefund}}, nil)

	full, err := svc.GetFull(context.Background(), 50)
	require.NoError(t, err)

	// 2 nights x 20000 + 3000 services - 1000 + 300 = 42300 pre-tax
	// tax 4230, gross 46530, balance 46530 - 14000 + 500 = 33030
	assert.Equal(t, 2, full.Totals.Nights)
	assert.Equal(t, "42300.00", full.Totals.PreTaxSubtotal)
	assert.Equal(t, "4230.00", full.Totals.Tax)
	assert.Equal(t, "46530.00", full.Totals.GrossTotal)
	assert.Equal(t, "33030.00", full.Totals.Balance)
	require.Len(t, full.Services, 1)
	require.Len(t, full.Payments, 1)
	require.Len(t, full.Adjustments, 1)
}
