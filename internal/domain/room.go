package domain

// RoomStatus is the physical state of a room, independent of bookings.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomReserved    RoomStatus = "Reserved"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

type Room struct {
	ID         int64
	RoomNumber string
	RoomTypeID int64
	BranchID   int64
	Status     RoomStatus

	// HeldByPreBookingID links a Reserved room to the pre-booking that
	// holds it, so auto-cancel can release exactly the right rooms.
	HeldByPreBookingID *int64
}

// RoomType is a pool of interchangeable rooms sharing a nightly rate and
// capacity; group bookings allocate out of this pool.
type RoomType struct {
	ID        int64
	Name      string
	DailyRate float64
	Capacity  int
	Amenities string
}
