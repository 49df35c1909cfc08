package prebooking

import "skynest/internal/domain"

// CreatePreBookingRequest places a tentative hold on rooms of one type.
// auto_cancel_date is optional; when omitted it defaults to seven days
// before the expected check-in.
type CreatePreBookingRequest struct {
	CustomerID       int64  `json:"customer_id" binding:"required"`
	RoomTypeID       int64  `json:"room_type_id" binding:"required"`
	ExpectedCheckIn  string `json:"expected_check_in" binding:"required"`
	ExpectedCheckOut string `json:"expected_check_out" binding:"required"`
	NumberOfRooms    int    `json:"number_of_rooms" binding:"required"`
	GroupName        string `json:"group_name"`
	AutoCancelDate   string `json:"auto_cancel_date"`
}

type PreBookingResponse struct {
	ID               int64  `json:"id"`
	Code             string `json:"code"`
	CustomerID       int64  `json:"customer_id"`
	RoomTypeID       int64  `json:"room_type_id"`
	ExpectedCheckIn  string `json:"expected_check_in"`
	ExpectedCheckOut string `json:"expected_check_out"`
	NumberOfRooms    int    `json:"number_of_rooms"`
	Status           string `json:"status"`
	GroupName        string `json:"group_name,omitempty"`
	AutoCancelDate   string `json:"auto_cancel_date,omitempty"`
	HeldRooms        int    `json:"held_rooms,omitempty"`
}

func toResponse(p *domain.PreBooking) PreBookingResponse {
	r := PreBookingResponse{
		ID:               p.ID,
		Code:             p.Code,
		CustomerID:       p.CustomerID,
		RoomTypeID:       p.RoomTypeID,
		ExpectedCheckIn:  p.ExpectedCheckIn.Format("2006-01-02"),
		ExpectedCheckOut: p.ExpectedCheckOut.Format("2006-01-02"),
		NumberOfRooms:    p.NumberOfRooms,
		Status:           string(p.Status),
		GroupName:        p.GroupName,
	}
	if p.AutoCancelDate != nil {
		r.AutoCancelDate = p.AutoCancelDate.Format("2006-01-02")
	}
	return r
}
