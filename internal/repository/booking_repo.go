package repository

import (
	"context"
	"errors"
	"time"

	"skynest/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) WithTx(tx *gorm.DB) *BookingRepository {
	return &BookingRepository{db: tx}
}

type bookingModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	PreBookingID *int64    `gorm:"column:pre_booking_id"`
	GuestID      int64     `gorm:"column:guest_id"`
	RoomID       *int64    `gorm:"column:room_id"`
	CheckInDate  time.Time `gorm:"column:check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date"`
	Status       string    `gorm:"column:status"`

	BookedRate     float64 `gorm:"column:booked_rate"`
	TaxRatePercent float64 `gorm:"column:tax_rate_percent"`
	DiscountAmount float64 `gorm:"column:discount_amount"`
	LateFeeAmount  float64 `gorm:"column:late_fee_amount"`
	AdvancePayment float64 `gorm:"column:advance_payment"`

	IsGroupBooking         bool    `gorm:"column:is_group_booking"`
	GroupName              *string `gorm:"column:group_name"`
	PreferredPaymentMethod *string `gorm:"column:preferred_payment_method"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:             m.ID,
		PreBookingID:   m.PreBookingID,
		GuestID:        m.GuestID,
		RoomID:         m.RoomID,
		CheckInDate:    m.CheckInDate,
		CheckOutDate:   m.CheckOutDate,
		Status:         domain.BookingStatus(m.Status),
		BookedRate:     m.BookedRate,
		TaxRatePercent: m.TaxRatePercent,
		DiscountAmount: m.DiscountAmount,
		LateFeeAmount:  m.LateFeeAmount,
		AdvancePayment: m.AdvancePayment,
		IsGroupBooking: m.IsGroupBooking,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.GroupName != nil {
		b.GroupName = *m.GroupName
	}
	if m.PreferredPaymentMethod != nil {
		b.PreferredPaymentMethod = *m.PreferredPaymentMethod
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:             b.ID,
		PreBookingID:   b.PreBookingID,
		GuestID:        b.GuestID,
		RoomID:         b.RoomID,
		CheckInDate:    b.CheckInDate,
		CheckOutDate:   b.CheckOutDate,
		Status:         string(b.Status),
		BookedRate:     b.BookedRate,
		TaxRatePercent: b.TaxRatePercent,
		DiscountAmount: b.DiscountAmount,
		LateFeeAmount:  b.LateFeeAmount,
		AdvancePayment: b.AdvancePayment,
		IsGroupBooking: b.IsGroupBooking,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	if b.GroupName != "" {
		v := b.GroupName
		m.GroupName = &v
	}
	if b.PreferredPaymentMethod != "" {
		v := b.PreferredPaymentMethod
		m.PreferredPaymentMethod = &v
	}
	return m
}

// Create inserts one booking row. A postgres exclusion-constraint
// violation (23P01, the no_room_overlap guard) surfaces as ErrRoomOverlap
// so the service can answer with a conflict instead of a 500.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(tx.Error, &pgErr) && pgErr.Code == "23P01" {
			return ErrRoomOverlap
		}
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

// CreateGroup inserts the rows of one group booking atomically: either
// every room in the group is booked or none is. Overlap violations map to
// ErrRoomOverlap just like Create.
func (r *BookingRepository) CreateGroup(ctx context.Context, bs []*domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := r.WithTx(tx)
		for _, b := range bs {
			if err := repo.Create(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
}

// ConvertPreBooking inserts a pre-booking's booking rows and marks the
// pre-booking Converted in one transaction. A failure on either side
// rolls back both, so a Pending pre-booking can never be left holding
// live booking rows.
func (r *BookingRepository) ConvertPreBooking(ctx context.Context, preBookingID int64, bs []*domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := r.WithTx(tx)
		for _, b := range bs {
			if err := repo.Create(ctx, b); err != nil {
				return err
			}
		}
		res := tx.Model(&preBookingModel{}).
			Where("id = ?", preBookingID).
			Update("status", string(domain.PreBookingConverted))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindConflicts lists blocking bookings for a room that overlap
// [checkIn, checkOut). excludeBookingID skips one row, for reschedules.
func (r *BookingRepository) FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status IN ?", []string{string(domain.BookingBooked), string(domain.BookingCheckedIn)}).
		Where("check_in_date < ? AND ? < check_out_date", checkOut, checkIn).
		Order("check_in_date ASC")
	if excludeBookingID > 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var ms []bookingModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListForRoom returns every booking touching [from, to) for a room,
// regardless of status; the availability endpoint shows the full picture.
func (r *BookingRepository) ListForRoom(ctx context.Context, roomID int64, from, to time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("check_in_date < ? AND ? < check_out_date", to, from).
		Order("check_in_date ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOverdueCheckedIn finds stays past their check-out date, the
// auto-checkout work list.
func (r *BookingRepository) ListOverdueCheckedIn(ctx context.Context, today time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingCheckedIn)).
		Where("check_out_date < ?", today).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListBetween returns bookings whose stay intersects [from, to), for the
// billing summary report.
func (r *BookingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	err := r.db.WithContext(ctx).
		Where("check_in_date < ? AND ? < check_out_date", to, from).
		Order("check_in_date ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// LedgerTotals carries pre-aggregated SQL sums for the quick-balance
// path. AdjustmentsTotal is already signed per the adjustment rules.
type LedgerTotals struct {
	ServicesTotal    float64 `gorm:"column:services_total"`
	PaymentsTotal    float64 `gorm:"column:payments_total"`
	AdjustmentsTotal float64 `gorm:"column:adjustments_total"`
}

func (r *BookingRepository) AggregateLedgers(ctx context.Context, bookingID int64) (LedgerTotals, error) {
	var t LedgerTotals
	err := r.db.WithContext(ctx).Raw(`
SELECT
  COALESCE((SELECT SUM(qty * unit_price_at_use) FROM service_usages WHERE booking_id = ?), 0) AS services_total,
  COALESCE((SELECT SUM(amount) FROM payments WHERE booking_id = ?), 0) AS payments_total,
  COALESCE((SELECT SUM(CASE WHEN type IN ('refund','chargeback') THEN amount ELSE -amount END)
              FROM payment_adjustments WHERE booking_id = ?), 0) AS adjustments_total`,
		bookingID, bookingID, bookingID).Scan(&t).Error
	return t, err
}
