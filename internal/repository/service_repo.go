package repository

import (
	"context"
	"errors"
	"time"

	"skynest/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) WithTx(tx *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: tx}
}

type serviceCatalogModel struct {
	ID        int64   `gorm:"column:id;primaryKey"`
	Name      string  `gorm:"column:name"`
	UnitPrice float64 `gorm:"column:unit_price"`
}

func (serviceCatalogModel) TableName() string { return "service_catalog" }

type serviceUsageModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	BookingID      int64     `gorm:"column:booking_id"`
	ServiceID      int64     `gorm:"column:service_id"`
	Qty            float64   `gorm:"column:qty"`
	UnitPriceAtUse float64   `gorm:"column:unit_price_at_use"`
	UsedOn         time.Time `gorm:"column:used_on"`
}

func (serviceUsageModel) TableName() string { return "service_usages" }

func (r *ServiceRepository) GetCatalogItem(ctx context.Context, id int64) (*domain.ServiceCatalog, error) {
	var m serviceCatalogModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &domain.ServiceCatalog{ID: m.ID, Name: m.Name, UnitPrice: m.UnitPrice}, nil
}

func (r *ServiceRepository) ListCatalog(ctx context.Context) ([]domain.ServiceCatalog, error) {
	var ms []serviceCatalogModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ServiceCatalog, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.ServiceCatalog{ID: m.ID, Name: m.Name, UnitPrice: m.UnitPrice})
	}
	return out, nil
}

func (r *ServiceRepository) CreateUsage(ctx context.Context, u *domain.ServiceUsage) error {
	m := serviceUsageModel{
		BookingID:      u.BookingID,
		ServiceID:      u.ServiceID,
		Qty:            u.Qty,
		UnitPriceAtUse: u.UnitPriceAtUse,
		UsedOn:         u.UsedOn,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	u.ID = m.ID
	return nil
}

func (r *ServiceRepository) ListUsageByBooking(ctx context.Context, bookingID int64) ([]domain.ServiceUsage, error) {
	var ms []serviceUsageModel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("used_on ASC, id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ServiceUsage, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.ServiceUsage{
			ID:             m.ID,
			BookingID:      m.BookingID,
			ServiceID:      m.ServiceID,
			Qty:            m.Qty,
			UnitPriceAtUse: m.UnitPriceAtUse,
			UsedOn:         m.UsedOn,
		})
	}
	return out, nil
}

func (r *ServiceRepository) DeleteUsage(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&serviceUsageModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
