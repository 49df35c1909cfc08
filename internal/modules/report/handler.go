package report

import (
	"net/http"

	"skynest/internal/pkg/dates"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/occupancy", h.Occupancy)
	rg.GET("/reports/billing-summary", h.BillingSummary)
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

func (h *Handler) Occupancy(c *gin.Context) {
	o, err := h.service.Occupancy(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute occupancy")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"occupancy": o}})
}

func (h *Handler) BillingSummary(c *gin.Context) {
	from, err1 := dates.Parse(c.Query("from"))
	to, err2 := dates.Parse(c.Query("to"))
	if err1 != nil || err2 != nil || !from.Before(to) {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "from and to must be YYYY-MM-DD with from < to")
		return
	}

	summary, err := h.service.BillingSummaryBetween(c.Request.Context(), from, to)
	if err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute billing summary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"summary": summary}})
}
