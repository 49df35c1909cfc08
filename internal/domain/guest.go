package domain

type Guest struct {
	ID       int64
	FullName string
	Email    string
	Phone    string
}

// Customer wraps a guest with a portal identity; pre-bookings reference
// customers, bookings reference guests.
type Customer struct {
	ID      int64
	GuestID int64
}

// UserAccount is a dashboard login row. Token issuance lives in the
// dashboard's auth layer; this core only seeds and validates.
type UserAccount struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}
