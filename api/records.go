package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bangohan/services/notify"
	"bangohan/services/record"
)

const notifyTimeout = 10 * time.Second

// GetRecords (GET /api/v1/calendars/{calendarId}/records)
// Filters by the date query parameter when present, otherwise by month
// (defaulting to the current month).
func (s *Server) GetRecords(c *gin.Context) {
	calendarID := c.Param("calendarId")

	if date := c.Query("date"); date != "" {
		records, err := s.records.GetByDate(c.Request.Context(), calendarID, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format(record.YearMonthLayout)
	}
	records, err := s.records.GetMonth(c.Request.Context(), calendarID, month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// AddRecord (POST /api/v1/calendars/{calendarId}/records)
func (s *Server) AddRecord(c *gin.Context) {
	calendarID := c.Param("calendarId")

	input := record.AddInput{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" {
		name, ok := s.identity.GetUserName(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required when no identity is set"})
			return
		}
		input.Name = name
	}

	rec, err := s.records.Add(c.Request.Context(), calendarID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.notifyAsync(notify.Event{
		CalendarID:  calendarID,
		Date:        rec.Date,
		Name:        rec.Name,
		NeedsDinner: rec.NeedsDinner,
		DinnerTime:  rec.DinnerTime,
		Action:      notify.ActionAdded,
	})
	c.JSON(http.StatusCreated, rec)
}

// DeleteRecord (DELETE /api/v1/calendars/{calendarId}/records/{recordId})
func (s *Server) DeleteRecord(c *gin.Context) {
	err := s.records.Delete(c.Request.Context(), c.Param("calendarId"), c.Param("recordId"))
	if err != nil {
		slog.With("error", err.Error()).Error("failed to delete record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete record"})
		return
	}
	c.Status(http.StatusNoContent)
}

type toggleRequest struct {
	Date string `json:"date"`
}

type toggleResponse struct {
	Added       bool `json:"added"`
	DinnerCount int  `json:"dinnerCount"`
}

// ToggleDinner (POST /api/v1/calendars/{calendarId}/toggle)
// Flips the current user's needs-dinner answer for the date. Requires a
// device identity.
func (s *Server) ToggleDinner(c *gin.Context) {
	calendarID := c.Param("calendarId")

	name, ok := s.identity.GetUserName(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "set your name first"})
		return
	}

	req := toggleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := s.records.Toggle(c.Request.Context(), calendarID, req.Date, name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := s.records.GetByDate(c.Request.Context(), calendarID, req.Date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	action := notify.ActionRemoved
	if added {
		action = notify.ActionAdded
	}
	s.notifyAsync(notify.Event{
		CalendarID:  calendarID,
		Date:        req.Date,
		Name:        name,
		NeedsDinner: added,
		Action:      action,
	})
	c.JSON(http.StatusOK, toggleResponse{
		Added:       added,
		DinnerCount: record.DinnerCount(records, req.Date),
	})
}

type dayDetailResponse struct {
	Date        string                `json:"date"`
	NeedsDinner []record.DinnerRecord `json:"needsDinner"`
	NoDinner    []record.DinnerRecord `json:"noDinner"`
	DinnerCount int                   `json:"dinnerCount"`
	Names       []string              `json:"names"`
}

// GetDay (GET /api/v1/calendars/{calendarId}/days/{date})
func (s *Server) GetDay(c *gin.Context) {
	date := c.Param("date")
	records, err := s.records.GetByDate(c.Request.Context(), c.Param("calendarId"), date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	needs, skips := record.Partition(records, date)
	c.JSON(http.StatusOK, dayDetailResponse{
		Date:        date,
		NeedsDinner: needs,
		NoDinner:    skips,
		DinnerCount: len(needs),
		Names:       record.Names(records),
	})
}

// notifyAsync posts the event to the family webhook without holding up the
// response. The subscription feed, not this notification, is the source of
// truth for the UI.
func (s *Server) notifyAsync(event notify.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, event); err != nil {
			slog.Warn("webhook notification failed", "calendarId", event.CalendarID, "error", err.Error())
		}
	}()
}
