package repository

import (
	"context"
	"time"

	"skynest/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

type paymentModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	BookingID        int64     `gorm:"column:booking_id"`
	Amount           float64   `gorm:"column:amount"`
	Method           string    `gorm:"column:method"`
	PaidAt           time.Time `gorm:"column:paid_at"`
	PaymentReference *string   `gorm:"column:payment_reference"`
	Note             *string   `gorm:"column:note"`
}

func (paymentModel) TableName() string { return "payments" }

type adjustmentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id"`
	Amount    float64   `gorm:"column:amount"`
	Type      string    `gorm:"column:type"`
	Reason    *string   `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (adjustmentModel) TableName() string { return "payment_adjustments" }

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *domain.Payment) error {
	m := paymentModel{
		BookingID: p.BookingID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		PaidAt:    p.PaidAt,
	}
	if p.PaymentReference != "" {
		v := p.PaymentReference
		m.PaymentReference = &v
	}
	if p.Note != "" {
		v := p.Note
		m.Note = &v
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var ms []paymentModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("paid_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payment, 0, len(ms))
	for _, m := range ms {
		p := domain.Payment{
			ID:        m.ID,
			BookingID: m.BookingID,
			Amount:    m.Amount,
			Method:    domain.PaymentMethod(m.Method),
			PaidAt:    m.PaidAt,
		}
		if m.PaymentReference != nil {
			p.PaymentReference = *m.PaymentReference
		}
		if m.Note != nil {
			p.Note = *m.Note
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PaymentRepository) CreateAdjustment(ctx context.Context, a *domain.PaymentAdjustment) error {
	m := adjustmentModel{
		BookingID: a.BookingID,
		Amount:    a.Amount,
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt,
	}
	if a.Reason != "" {
		v := a.Reason
		m.Reason = &v
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	return nil
}

func (r *PaymentRepository) ListAdjustmentsByBooking(ctx context.Context, bookingID int64) ([]domain.PaymentAdjustment, error) {
	var ms []adjustmentModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.PaymentAdjustment, 0, len(ms))
	for _, m := range ms {
		a := domain.PaymentAdjustment{
			ID:        m.ID,
			BookingID: m.BookingID,
			Amount:    m.Amount,
			Type:      domain.AdjustmentType(m.Type),
			CreatedAt: m.CreatedAt,
		}
		if m.Reason != nil {
			a.Reason = *m.Reason
		}
		out = append(out, a)
	}
	return out, nil
}
