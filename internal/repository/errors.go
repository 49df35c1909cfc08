package repository

import "errors"

var (
	// ErrNotFound wraps gorm.ErrRecordNotFound at the repository boundary.
	ErrNotFound = errors.New("record not found")

	// ErrRoomOverlap is returned when the storage-layer exclusion
	// constraint rejects a booking insert for an overlapping date range.
	ErrRoomOverlap = errors.New("room already booked for that date range")
)
