package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bridgetunes/draw-console-backend/internal/eligibility"
	"github.com/bridgetunes/draw-console-backend/internal/models"
	"github.com/bridgetunes/draw-console-backend/internal/orchestrator"
	"github.com/bridgetunes/draw-console-backend/pkg/remote"
)

// ConsoleHandler exposes the draw lifecycle orchestrator over HTTP
type ConsoleHandler struct {
	orch     *orchestrator.Orchestrator
	resolver *eligibility.Resolver
}

// NewConsoleHandler creates a new ConsoleHandler
func NewConsoleHandler(orch *orchestrator.Orchestrator, resolver *eligibility.Resolver) *ConsoleHandler {
	return &ConsoleHandler{
		orch:     orch,
		resolver: resolver,
	}
}

// remoteErrorStatus maps a remote error kind to an HTTP status
func remoteErrorStatus(err error) int {
	switch remote.KindOf(err) {
	case remote.KindNotFound:
		return http.StatusNotFound
	case remote.KindConflict:
		return http.StatusConflict
	case remote.KindInvalidTransition:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func actorFrom(c *gin.Context) string {
	return c.GetString("actor")
}

// GetState handles GET /console/draws/state. With a date query parameter it
// re-derives state for that date first; without one it returns the current
// snapshot.
func (h *ConsoleHandler) GetState(c *gin.Context) {
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (YYYY-MM-DD)"})
			return
		}
		// Lookup failures are already reflected in the snapshot's lastError;
		// the snapshot itself is always returned.
		_ = h.orch.SelectDate(c.Request.Context(), date)
	}
	c.JSON(http.StatusOK, h.orch.Snapshot())
}

// Schedule handles POST /console/draws/schedule
func (h *ConsoleHandler) Schedule(c *gin.Context) {
	if err := h.orch.Schedule(c.Request.Context(), actorFrom(c)); err != nil {
		c.JSON(remoteErrorStatus(err), gin.H{"error": "Failed to schedule draw: " + err.Error(), "state": h.orch.Snapshot()})
		return
	}
	c.JSON(http.StatusCreated, h.orch.Snapshot())
}

// Execute handles POST /console/draws/execute
func (h *ConsoleHandler) Execute(c *gin.Context) {
	if err := h.orch.ExecuteNow(c.Request.Context(), actorFrom(c)); err != nil {
		c.JSON(remoteErrorStatus(err), gin.H{"error": "Failed to execute draw: " + err.Error(), "state": h.orch.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, h.orch.Snapshot())
}

// RefreshWinners handles POST /console/draws/winners/refresh
func (h *ConsoleHandler) RefreshWinners(c *gin.Context) {
	if err := h.orch.RefreshWinners(c.Request.Context()); err != nil {
		c.JSON(remoteErrorStatus(err), gin.H{"error": "Failed to fetch winners: " + err.Error(), "state": h.orch.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, h.orch.Snapshot())
}

// ToggleDigitRequest is the payload for POST /console/draws/digits/toggle
type ToggleDigitRequest struct {
	Digit *int `json:"digit" binding:"required"`
}

// ToggleDigit handles POST /console/draws/digits/toggle. When the draw
// configuration is locked the toggle is a no-op, not an error.
func (h *ConsoleHandler) ToggleDigit(c *gin.Context) {
	var request ToggleDigitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *request.Digit < 0 || *request.Digit > 9 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Digit must be between 0 and 9"})
		return
	}
	h.orch.ToggleDigit(*request.Digit)
	c.JSON(http.StatusOK, h.orch.Snapshot())
}

// SelectAllDigits handles POST /console/draws/digits/select-all
func (h *ConsoleHandler) SelectAllDigits(c *gin.Context) {
	h.orch.SelectAllDigits()
	c.JSON(http.StatusOK, h.orch.Snapshot())
}

// ClearDigits handles POST /console/draws/digits/clear
func (h *ConsoleHandler) ClearDigits(c *gin.Context) {
	h.orch.ClearDigits()
	c.JSON(http.StatusOK, h.orch.Snapshot())
}

// UseDefaultsRequest is the payload for POST /console/draws/digits/use-defaults
type UseDefaultsRequest struct {
	UseDefault *bool `json:"use_default" binding:"required"`
}

// SetUseDefaults handles POST /console/draws/digits/use-defaults
func (h *ConsoleHandler) SetUseDefaults(c *gin.Context) {
	var request UseDefaultsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.orch.SetUseDefaults(*request.UseDefault)
	c.JSON(http.StatusOK, h.orch.Snapshot())
}

// UpdateWinnerStatusRequest is the payload for PUT /console/winners/:id/status
type UpdateWinnerStatusRequest struct {
	Status models.ClaimStatus `json:"status" binding:"required"`
}

// UpdateWinnerStatus handles PUT /console/winners/:id/status
func (h *ConsoleHandler) UpdateWinnerStatus(c *gin.Context) {
	var request UpdateWinnerStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	winner, err := h.orch.UpdateWinnerStatus(c.Request.Context(), actorFrom(c), c.Param("id"), request.Status)
	if err != nil {
		c.JSON(remoteErrorStatus(err), gin.H{"error": "Failed to update winner status: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"winner": winner, "state": h.orch.Snapshot()})
}

// GetDefaultDigits handles GET /console/default-digits/:day
func (h *ConsoleHandler) GetDefaultDigits(c *gin.Context) {
	dayStr := c.Param("day")
	weekday, ok := eligibility.ParseWeekday(dayStr)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day name provided. Use full names like 'Monday', 'Tuesday', etc."})
		return
	}
	digits, degraded := h.resolver.DefaultDigitsFor(c.Request.Context(), nextDateFor(weekday))
	c.JSON(http.StatusOK, gin.H{"day": weekday.String(), "digits": digits, "degraded": degraded})
}

// nextDateFor returns the next calendar date (today included) falling on
// the given weekday
func nextDateFor(weekday time.Weekday) time.Time {
	date := time.Now()
	for date.Weekday() != weekday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}
