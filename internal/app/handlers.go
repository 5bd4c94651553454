package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type createAppointmentReq struct {
	StartStr     string `json:"start" binding:"required"` // RFC3339
	DurationMins int    `json:"duration_minutes"`
	Client       string `json:"client" binding:"required"`
}

// POST /api/appointments
func (a *App) CreateAppointmentHandler(c *gin.Context) {
	var req createAppointmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
		return
	}

	appt, err := a.Scheduler.Add(start, req.DurationMins, req.Client)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"appointment": appt,
		"message":     ConfirmationMessage(appt),
	})
}

// GET /api/appointments
func (a *App) ListAppointmentsHandler(c *gin.Context) {
	appts, err := a.Scheduler.List()
	if errors.Is(err, ErrEmptySchedule) {
		c.JSON(http.StatusOK, gin.H{
			"appointments": []Appointment{},
			"count":        0,
			"message":      err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"appointments": appts,
		"count":        len(appts),
		"listing":      Render(appts),
	})
}

// GET /api/slots/suggest?duration=30&date=YYYY-MM-DD
func (a *App) SuggestSlotHandler(c *gin.Context) {
	duration, on, ok := a.slotQuery(c)
	if !ok {
		return
	}
	start, err := a.Scheduler.SuggestSlot(on, duration)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	slot := Slot{Start: start, End: start.Add(minutes(duration))}
	c.JSON(http.StatusOK, gin.H{
		"start":   slot.Start,
		"end":     slot.End,
		"message": SuggestionMessage(slot),
	})
}

// GET /api/slots?duration=30&date=YYYY-MM-DD
func (a *App) FreeSlotsHandler(c *gin.Context) {
	duration, on, ok := a.slotQuery(c)
	if !ok {
		return
	}
	slots, err := a.Scheduler.FreeSlots(on, duration)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if slots == nil {
		slots = []Slot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"slots": slots,
		"count": len(slots),
	})
}

// GET /healthz
func (a *App) HealthHandler(c *gin.Context) {
	hours := a.Scheduler.Hours()
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"working_hours": hours,
	})
}

// slotQuery parses duration and the optional date. It writes the error
// response itself and reports false when the request is unusable.
func (a *App) slotQuery(c *gin.Context) (int, time.Time, bool) {
	durationStr := c.Query("duration")
	if durationStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration required (minutes)"})
		return 0, time.Time{}, false
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration"})
		return 0, time.Time{}, false
	}

	now := a.Now()
	on := now
	if dateStr := c.Query("date"); dateStr != "" {
		on, err = time.ParseInLocation(dateLayout, dateStr, now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (YYYY-MM-DD)"})
			return 0, time.Time{}, false
		}
	}
	return duration, on, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrOutOfHours):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrOverlap):
		return http.StatusConflict
	case errors.Is(err, ErrNoSlotAvailable):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
