package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bridgetunes/draw-console-backend/internal/services"
)

// AuditHandler exposes the draw audit trail
type AuditHandler struct {
	auditService services.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListEvents handles GET /console/audit
func (h *AuditHandler) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	events, total, err := h.auditService.ListEvents(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit events: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": total, "page": page, "limit": limit})
}

// EventsForDate handles GET /console/audit/date/:date
func (h *AuditHandler) EventsForDate(c *gin.Context) {
	dateStr := c.Param("date")
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (YYYY-MM-DD)"})
		return
	}

	events, err := h.auditService.EventsForDate(c.Request.Context(), dateStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit events: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
