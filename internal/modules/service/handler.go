package service

import (
	"errors"
	"net/http"
	"strconv"

	"skynest/internal/pkg/money"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.Catalog)
	rg.POST("/services/usage", h.RecordUsage)
	rg.DELETE("/services/usage/:id", h.DeleteUsage)
	rg.GET("/bookings/:id/services", h.ListForBooking)
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

func (h *Handler) Catalog(c *gin.Context) {
	items, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load service catalog")
		return
	}
	out := make([]CatalogResponse, 0, len(items))
	for _, item := range items {
		out = append(out, CatalogResponse{ID: item.ID, Name: item.Name, UnitPrice: money.Format(item.UnitPrice)})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"services": out}})
}

func (h *Handler) RecordUsage(c *gin.Context) {
	var req RecordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.RecordUsage(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service usage")
		case errors.Is(err, ErrBookingNotFound):
			fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrServiceNotFound):
			fail(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
		case errors.Is(err, ErrBookingClosed):
			fail(c, http.StatusConflict, "BOOKING_CLOSED", "Booking does not accept service charges")
		default:
			fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record service usage")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"usage": toUsageResponse(u)}})
}

func (h *Handler) DeleteUsage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid usage id")
		return
	}

	if err := h.service.DeleteUsage(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrUsageNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "Service usage not found")
			return
		}
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete service usage")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"deleted": id}})
}

func (h *Handler) ListForBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	usage, err := h.service.ListForBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list service usage")
		return
	}

	out := make([]UsageResponse, 0, len(usage))
	for i := range usage {
		out = append(out, toUsageResponse(&usage[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"usage": out}})
}
