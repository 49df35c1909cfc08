package repository

import (
	"context"
	"errors"

	"skynest/internal/domain"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

type guestModel struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	FullName string `gorm:"column:full_name"`
	Email    string `gorm:"column:email"`
	Phone    string `gorm:"column:phone"`
}

func (guestModel) TableName() string { return "guests" }

type customerModel struct {
	ID      int64 `gorm:"column:id;primaryKey"`
	GuestID int64 `gorm:"column:guest_id"`
}

func (customerModel) TableName() string { return "customers" }

func (r *GuestRepository) GetGuest(ctx context.Context, id int64) (*domain.Guest, error) {
	var m guestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &domain.Guest{ID: m.ID, FullName: m.FullName, Email: m.Email, Phone: m.Phone}, nil
}

func (r *GuestRepository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &domain.Customer{ID: m.ID, GuestID: m.GuestID}, nil
}
