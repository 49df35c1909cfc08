package booking

import (
	"errors"
	"net/http"
	"strconv"

	"skynest/internal/modules/availability"
	"skynest/internal/pkg/dates"
	"skynest/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service      *Service
	availability *availability.Service
}

func NewHandler(service *Service, avail *availability.Service) *Handler {
	return &Handler{service: service, availability: avail}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.GET("/bookings/:id/full", h.GetFullBooking)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
	rg.GET("/bookings/rooms/:roomId/availability", h.CheckRoomAvailability)
	rg.GET("/bookings/rooms/availability", h.CheckTypeAvailability)
	rg.GET("/bookings/rooms/free", h.ListFreeRooms)
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// CreateBooking handles both shapes of the creation body: a room_id for
// a single booking, or is_group_booking with room_type_id/room_quantity
// for a group.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if req.IsGroupBooking {
		bs, err := h.service.CreateGroupBooking(c.Request.Context(), req)
		if err != nil {
			h.writeCreateError(c, err)
			return
		}
		resp := GroupBookingResponse{Bookings: make([]BookingResponse, 0, len(bs))}
		for _, b := range bs {
			resp.Bookings = append(resp.Bookings, toResponse(b))
		}
		if len(bs) > 0 {
			resp.GroupName = bs[0].GroupName
		}
		ok(c, http.StatusCreated, resp)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}
	ok(c, http.StatusCreated, gin.H{"booking": toResponse(b)})
}

func (h *Handler) writeCreateError(c *gin.Context, err error) {
	var conflict *ConflictError
	var shortage *ShortageError
	switch {
	case errors.Is(err, ErrValidation):
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrGuestNotFound):
		fail(c, http.StatusNotFound, "GUEST_NOT_FOUND", "Guest does not exist")
	case errors.Is(err, ErrRoomNotFound):
		fail(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room or room type does not exist")
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": gin.H{
			"code":        "BOOKING_CONFLICT",
			"message":     conflict.Error(),
			"suggestions": conflict.Suggestions,
		}})
	case errors.As(err, &shortage):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": gin.H{
			"code":       "NOT_ENOUGH_ROOMS",
			"message":    shortage.Error(),
			"requested":  shortage.Requested,
			"free_count": shortage.Free,
		}})
	case errors.Is(err, ErrNotAvailable):
		fail(c, http.StatusConflict, "BOOKING_CONFLICT", "Room is not available for the selected dates")
	case errors.Is(err, ErrNotEnoughRooms):
		fail(c, http.StatusConflict, "NOT_ENOUGH_ROOMS", "Not enough free rooms of the requested type")
	case errors.Is(err, ErrAdvanceTooLow):
		fail(c, http.StatusUnprocessableEntity, "ADVANCE_TOO_LOW", "Advance payment is below the required minimum")
	default:
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
	}
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		return
	}
	ok(c, http.StatusOK, gin.H{"booking": toResponse(b)})
}

func (h *Handler) GetFullBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	full, err := h.service.GetFull(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		return
	}
	ok(c, http.StatusOK, full)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		var te *TransitionError
		switch {
		case errors.Is(err, ErrValidation):
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status")
		case errors.Is(err, ErrNotFound):
			fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.As(err, &te):
			fail(c, http.StatusConflict, "INVALID_TRANSITION", te.Error())
		default:
			fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking status")
		}
		return
	}
	ok(c, http.StatusOK, gin.H{"booking": toResponse(b)})
}

func (h *Handler) CheckRoomAvailability(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("roomId"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}
	from, err1 := dates.Parse(c.Query("from"))
	to, err2 := dates.Parse(c.Query("to"))
	if err1 != nil || err2 != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "from and to must be YYYY-MM-DD")
		return
	}
	excludeID, _ := strconv.ParseInt(c.Query("exclude_booking_id"), 10, 64)

	res, err := h.availability.CheckRoom(c.Request.Context(), roomID, from, to, excludeID)
	if err != nil {
		h.writeAvailabilityError(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

func (h *Handler) CheckTypeAvailability(c *gin.Context) {
	roomTypeID, err := strconv.ParseInt(c.Query("room_type_id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room_type_id")
		return
	}
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid quantity")
		return
	}
	from, err1 := dates.Parse(c.Query("from"))
	to, err2 := dates.Parse(c.Query("to"))
	if err1 != nil || err2 != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "from and to must be YYYY-MM-DD")
		return
	}

	q := repository.FreeRoomQuery{CheckIn: from, CheckOut: to, RoomTypeID: roomTypeID}
	q.Capacity, _ = strconv.Atoi(c.Query("capacity"))
	q.BranchID, _ = strconv.ParseInt(c.Query("branch_id"), 10, 64)

	res, err := h.availability.CheckRoomType(c.Request.Context(), q, quantity)
	if err != nil {
		h.writeAvailabilityError(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

func (h *Handler) ListFreeRooms(c *gin.Context) {
	from, err1 := dates.Parse(c.Query("from"))
	to, err2 := dates.Parse(c.Query("to"))
	if err1 != nil || err2 != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "from and to must be YYYY-MM-DD")
		return
	}

	q := repository.FreeRoomQuery{CheckIn: from, CheckOut: to}
	q.RoomTypeID, _ = strconv.ParseInt(c.Query("room_type_id"), 10, 64)
	q.Capacity, _ = strconv.Atoi(c.Query("capacity"))
	q.BranchID, _ = strconv.ParseInt(c.Query("branch_id"), 10, 64)
	q.ExcludeRoomID, _ = strconv.ParseInt(c.Query("exclude_room_id"), 10, 64)
	q.Limit, _ = strconv.Atoi(c.Query("limit"))

	rooms, err := h.availability.FreeRooms(c.Request.Context(), q)
	if err != nil {
		h.writeAvailabilityError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) writeAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, availability.ErrValidation):
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability query")
	case errors.Is(err, availability.ErrRoomNotFound), errors.Is(err, availability.ErrTypeNotFound):
		fail(c, http.StatusNotFound, "NOT_FOUND", "Room or room type does not exist")
	default:
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check availability")
	}
}
