// Package api exposes the JSON API of the dinner calendar. Handlers are
// registered under /api/v1 behind the OpenAPI request validator.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bangohan/identity"
	"bangohan/services/calendar"
	"bangohan/services/export"
	"bangohan/services/notify"
	"bangohan/services/preference"
	"bangohan/services/record"
)

type Server struct {
	calendars calendar.Service
	records   record.Service
	prefs     preference.Service
	notifier  notify.Service
	exporter  export.Service
	identity  *identity.Manager
	baseURL   string
}

func NewServer(
	calendars calendar.Service,
	records record.Service,
	prefs preference.Service,
	notifier notify.Service,
	exporter export.Service,
	idm *identity.Manager,
	baseURL string,
) *Server {
	return &Server{
		calendars: calendars,
		records:   records,
		prefs:     prefs,
		notifier:  notifier,
		exporter:  exporter,
		identity:  idm,
		baseURL:   baseURL,
	}
}

// RegisterHandlers attaches all API routes to the given router group.
// Paths are relative to /api/v1.
func RegisterHandlers(r gin.IRouter, s *Server) {
	r.GET("/ping", s.GetPing)

	r.POST("/calendars", s.CreateCalendar)
	r.GET("/calendars/:calendarId", s.GetCalendar)
	r.GET("/calendars/:calendarId/records", s.GetRecords)
	r.POST("/calendars/:calendarId/records", s.AddRecord)
	r.DELETE("/calendars/:calendarId/records/:recordId", s.DeleteRecord)
	r.POST("/calendars/:calendarId/toggle", s.ToggleDinner)
	r.GET("/calendars/:calendarId/days/:date", s.GetDay)
	r.GET("/calendars/:calendarId/share", s.GetShareLink)
	r.GET("/calendars/:calendarId/share/qr.png", s.GetShareQR)
	r.POST("/calendars/:calendarId/export", s.ExportCalendar)
	r.GET("/calendars/:calendarId/preferences/:userName", s.GetPreference)
	r.PUT("/calendars/:calendarId/preferences/:userName", s.PutPreference)

	r.GET("/identity", s.GetIdentity)
	r.PUT("/identity", s.PutIdentity)
	r.DELETE("/identity", s.DeleteIdentity)
}

type Pong struct {
	Ping string `json:"ping"`
}

// GetPing (GET /api/v1/ping)
func (s *Server) GetPing(c *gin.Context) {
	c.JSON(http.StatusOK, Pong{Ping: "pong"})
}
