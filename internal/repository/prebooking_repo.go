package repository

import (
	"context"
	"errors"
	"time"

	"skynest/internal/domain"

	"gorm.io/gorm"
)

type PreBookingRepository struct {
	db *gorm.DB
}

func NewPreBookingRepository(db *gorm.DB) *PreBookingRepository {
	return &PreBookingRepository{db: db}
}

func (r *PreBookingRepository) WithTx(tx *gorm.DB) *PreBookingRepository {
	return &PreBookingRepository{db: tx}
}

type preBookingModel struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	Code             string     `gorm:"column:code"`
	CustomerID       int64      `gorm:"column:customer_id"`
	RoomTypeID       int64      `gorm:"column:room_type_id"`
	ExpectedCheckIn  time.Time  `gorm:"column:expected_check_in"`
	ExpectedCheckOut time.Time  `gorm:"column:expected_check_out"`
	NumberOfRooms    int        `gorm:"column:number_of_rooms"`
	Status           string     `gorm:"column:status"`
	GroupName        *string    `gorm:"column:group_name"`
	AutoCancelDate   *time.Time `gorm:"column:auto_cancel_date"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
}

func (preBookingModel) TableName() string { return "pre_bookings" }

func toDomainPreBooking(m preBookingModel) *domain.PreBooking {
	p := &domain.PreBooking{
		ID:               m.ID,
		Code:             m.Code,
		CustomerID:       m.CustomerID,
		RoomTypeID:       m.RoomTypeID,
		ExpectedCheckIn:  m.ExpectedCheckIn,
		ExpectedCheckOut: m.ExpectedCheckOut,
		NumberOfRooms:    m.NumberOfRooms,
		Status:           domain.PreBookingStatus(m.Status),
		AutoCancelDate:   m.AutoCancelDate,
		CreatedAt:        m.CreatedAt,
	}
	if m.GroupName != nil {
		p.GroupName = *m.GroupName
	}
	return p
}

func (r *PreBookingRepository) Create(ctx context.Context, p *domain.PreBooking) error {
	m := preBookingModel{
		Code:             p.Code,
		CustomerID:       p.CustomerID,
		RoomTypeID:       p.RoomTypeID,
		ExpectedCheckIn:  p.ExpectedCheckIn,
		ExpectedCheckOut: p.ExpectedCheckOut,
		NumberOfRooms:    p.NumberOfRooms,
		Status:           string(p.Status),
		AutoCancelDate:   p.AutoCancelDate,
		CreatedAt:        p.CreatedAt,
	}
	if p.GroupName != "" {
		v := p.GroupName
		m.GroupName = &v
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainPreBooking(m)
	return nil
}

func (r *PreBookingRepository) GetByID(ctx context.Context, id int64) (*domain.PreBooking, error) {
	var m preBookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainPreBooking(m), nil
}

func (r *PreBookingRepository) List(ctx context.Context, status domain.PreBookingStatus) ([]domain.PreBooking, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	var ms []preBookingModel
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.PreBooking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainPreBooking(m))
	}
	return out, nil
}

// ListExpiredPending is the auto-cancel work list: pending holds whose
// deadline is strictly before today.
func (r *PreBookingRepository) ListExpiredPending(ctx context.Context, today time.Time) ([]domain.PreBooking, error) {
	var ms []preBookingModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.PreBookingPending)).
		Where("auto_cancel_date IS NOT NULL AND auto_cancel_date < ?", today).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.PreBooking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainPreBooking(m))
	}
	return out, nil
}

// ListConvertible is the auto-convert work list: pending holds arriving
// exactly on targetCheckIn whose deadline has already passed or arrived.
func (r *PreBookingRepository) ListConvertible(ctx context.Context, targetCheckIn, today time.Time) ([]domain.PreBooking, error) {
	var ms []preBookingModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.PreBookingPending)).
		Where("expected_check_in = ?", targetCheckIn).
		Where("auto_cancel_date IS NOT NULL AND auto_cancel_date <= ?", today).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.PreBooking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainPreBooking(m))
	}
	return out, nil
}

func (r *PreBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.PreBookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&preBookingModel{}).
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
