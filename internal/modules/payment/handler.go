package payment

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
	rg.POST("/payments", h.CreatePayment)
	rg.POST("/payments/adjustment", h.CreateAdjustment)
	rg.GET("/bookings/:id/payments", h.ListForBooking)
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ledger entry")
	case errors.Is(err, ErrBookingNotFound):
		fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrBookingClosed):
		fail(c, http.StatusConflict, "BOOKING_CLOSED", "Booking does not accept ledger entries")
	default:
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record ledger entry")
	}
}

func (h *Handler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"payment": toPaymentResponse(p)}})
}

func (h *Handler) CreateAdjustment(c *gin.Context) {
	var req CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.RecordAdjustment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"adjustment": toAdjustmentResponse(a)}})
}

func (h *Handler) ListForBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	payments, adjustments, err := h.service.ListForBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ps := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		ps = append(ps, toPaymentResponse(&payments[i]))
	}
	as := make([]AdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		as = append(as, toAdjustmentResponse(&adjustments[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"payments":    ps,
		"adjustments": as,
	}})
}
