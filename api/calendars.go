package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bangohan/services/calendar"
	"bangohan/services/export"
	"bangohan/services/share"
)

type createCalendarRequest struct {
	ID string `json:"id"`
}

type calendarCreatedResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCalendar (POST /api/v1/calendars)
func (s *Server) CreateCalendar(c *gin.Context) {
	req := createCalendarRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	id := req.ID
	if id == "" {
		var err error
		id, err = calendar.NewID()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if err := s.calendars.Create(c.Request.Context(), id); err != nil {
		slog.With("error", err.Error()).Error("failed to create calendar")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create calendar"})
		return
	}
	c.JSON(http.StatusCreated, calendarCreatedResponse{
		ID:  id,
		URL: share.URL(s.baseURL, id),
	})
}

// GetCalendar (GET /api/v1/calendars/{calendarId})
func (s *Server) GetCalendar(c *gin.Context) {
	cal, err := s.calendars.Get(c.Request.Context(), c.Param("calendarId"))
	if err != nil {
		if errors.Is(err, calendar.NotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "calendar not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cal)
}

// GetShareLink (GET /api/v1/calendars/{calendarId}/share)
func (s *Server) GetShareLink(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": share.URL(s.baseURL, c.Param("calendarId"))})
}

// GetShareQR (GET /api/v1/calendars/{calendarId}/share/qr.png)
func (s *Server) GetShareQR(c *gin.Context) {
	png, err := share.QRCode(s.baseURL, c.Param("calendarId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ExportCalendar (POST /api/v1/calendars/{calendarId}/export)
func (s *Server) ExportCalendar(c *gin.Context) {
	object, err := s.exporter.Export(c.Request.Context(), c.Param("calendarId"))
	if err != nil {
		if errors.Is(err, export.ErrNoBucket) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		slog.With("error", err.Error()).Error("failed to export calendar")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export calendar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"object": object})
}
