package prebooking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/prebookings", h.Create)
	rg.GET("/prebookings", h.List)
	rg.GET("/prebookings/:id", h.Get)
	rg.POST("/prebookings/:id/cancel", h.Cancel)
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePreBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, held, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pre-booking request")
		case errors.Is(err, ErrCustomerNotFound):
			fail(c, http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer does not exist")
		case errors.Is(err, ErrTypeNotFound):
			fail(c, http.StatusNotFound, "ROOM_TYPE_NOT_FOUND", "Room type does not exist")
		case errors.Is(err, ErrNotEnoughRooms):
			fail(c, http.StatusConflict, "NOT_ENOUGH_ROOMS", "Not enough free rooms to hold")
		default:
			fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create pre-booking")
		}
		return
	}

	resp := toResponse(p)
	resp.HeldRooms = held
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"pre_booking": resp}})
}

func (h *Handler) List(c *gin.Context) {
	ps, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown pre-booking status filter")
			return
		}
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list pre-bookings")
		return
	}

	out := make([]PreBookingResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toResponse(&ps[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"pre_bookings": out}})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pre-booking id")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "Pre-booking not found")
			return
		}
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load pre-booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"pre_booking": toResponse(p)}})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pre-booking id")
		return
	}

	p, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			fail(c, http.StatusNotFound, "NOT_FOUND", "Pre-booking not found")
		case errors.Is(err, ErrValidation):
			fail(c, http.StatusConflict, "INVALID_STATE", "Pre-booking cannot be cancelled from its current status")
		default:
			fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel pre-booking")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"pre_booking": toResponse(p)}})
}
