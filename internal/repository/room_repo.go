package repository

import (
	"context"
	"errors"
	"time"

	"skynest/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// WithTx returns a copy bound to an open transaction.
func (r *RoomRepository) WithTx(tx *gorm.DB) *RoomRepository {
	return &RoomRepository{db: tx}
}

type roomModel struct {
	ID                 int64  `gorm:"column:id;primaryKey"`
	RoomNumber         string `gorm:"column:room_number"`
	RoomTypeID         int64  `gorm:"column:room_type_id"`
	BranchID           int64  `gorm:"column:branch_id"`
	Status             string `gorm:"column:status"`
	HeldByPreBookingID *int64 `gorm:"column:held_by_pre_booking_id"`
}

func (roomModel) TableName() string { return "rooms" }

type roomTypeModel struct {
	ID        int64   `gorm:"column:id;primaryKey"`
	Name      string  `gorm:"column:name"`
	DailyRate float64 `gorm:"column:daily_rate"`
	Capacity  int     `gorm:"column:capacity"`
	Amenities string  `gorm:"column:amenities"`
}

func (roomTypeModel) TableName() string { return "room_types" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:                 m.ID,
		RoomNumber:         m.RoomNumber,
		RoomTypeID:         m.RoomTypeID,
		BranchID:           m.BranchID,
		Status:             domain.RoomStatus(m.Status),
		HeldByPreBookingID: m.HeldByPreBookingID,
	}
}

// FreeRoom is a free-room discovery row: the room plus the type fields
// the dashboard shows when suggesting alternatives.
type FreeRoom struct {
	RoomID       int64   `json:"room_id"`
	RoomNumber   string  `json:"room_number"`
	RoomTypeID   int64   `json:"room_type_id"`
	RoomTypeName string  `json:"room_type_name"`
	Capacity     int     `json:"capacity"`
	DailyRate    float64 `json:"daily_rate"`
}

// FreeRoomQuery filters free-room discovery. Limit is capped at 50.
type FreeRoomQuery struct {
	CheckIn       time.Time
	CheckOut      time.Time
	RoomTypeID    int64
	Capacity      int
	BranchID      int64
	ExcludeRoomID int64
	Limit         int
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	var m roomTypeModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &domain.RoomType{
		ID:        m.ID,
		Name:      m.Name,
		DailyRate: m.DailyRate,
		Capacity:  m.Capacity,
		Amenities: m.Amenities,
	}, nil
}

// FreeRooms lists rooms in Available status with no blocking booking
// overlapping [check_in, check_out), ordered by room number then id.
// Overlap rule: existing.check_in < requested.check_out AND
// requested.check_in < existing.check_out.
func (r *RoomRepository) FreeRooms(ctx context.Context, q FreeRoomQuery) ([]FreeRoom, error) {
	limit := q.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	sql := `
SELECT r.id AS room_id,
       r.room_number,
       r.room_type_id,
       rt.name AS room_type_name,
       rt.capacity,
       rt.daily_rate
  FROM rooms r
  JOIN room_types rt ON rt.id = r.room_type_id
 WHERE r.status = 'Available'
   AND NOT EXISTS (
     SELECT 1
       FROM bookings b
      WHERE b.room_id = r.id
        AND b.status IN ('Booked', 'Checked-In')
        AND b.check_in_date < ?
        AND ? < b.check_out_date
   )`
	args := []any{q.CheckOut, q.CheckIn}

	if q.RoomTypeID > 0 {
		sql += ` AND r.room_type_id = ?`
		args = append(args, q.RoomTypeID)
	}
	if q.Capacity > 0 {
		sql += ` AND rt.capacity >= ?`
		args = append(args, q.Capacity)
	}
	if q.BranchID > 0 {
		sql += ` AND r.branch_id = ?`
		args = append(args, q.BranchID)
	}
	if q.ExcludeRoomID > 0 {
		sql += ` AND r.id <> ?`
		args = append(args, q.ExcludeRoomID)
	}

	sql += ` ORDER BY r.room_number ASC, r.id ASC LIMIT ?`
	args = append(args, limit)

	var rows []FreeRoom
	tx := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id = ?", roomID).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Hold marks rooms Reserved on behalf of a pre-booking.
func (r *RoomRepository) Hold(ctx context.Context, roomIDs []int64, preBookingID int64) error {
	if len(roomIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&roomModel{}).
		Where("id IN ?", roomIDs).
		Updates(map[string]any{
			"status":                 string(domain.RoomReserved),
			"held_by_pre_booking_id": preBookingID,
		}).Error
}

// ReleaseHeld frees every room still Reserved for the pre-booking.
// Returns how many rooms were released; zero is not an error.
func (r *RoomRepository) ReleaseHeld(ctx context.Context, preBookingID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("held_by_pre_booking_id = ? AND status = ?", preBookingID, string(domain.RoomReserved)).
		Updates(map[string]any{
			"status":                 string(domain.RoomAvailable),
			"held_by_pre_booking_id": nil,
		})
	return tx.RowsAffected, tx.Error
}

// CountByStatus returns the room census for the occupancy report.
func (r *RoomRepository) CountByStatus(ctx context.Context) (map[domain.RoomStatus]int64, error) {
	var rows []struct {
		Status string `gorm:"column:status"`
		N      int64  `gorm:"column:n"`
	}
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make(map[domain.RoomStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.RoomStatus(row.Status)] = row.N
	}
	return out, nil
}
