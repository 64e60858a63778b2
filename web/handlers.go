// Package web serves the server-rendered calendar pages.
package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bangohan/grid"
	"bangohan/identity"
	"bangohan/services/calendar"
	"bangohan/services/preference"
	"bangohan/services/record"
	"bangohan/services/share"
)

type Handler struct {
	calendars calendar.Service
	records   record.Service
	prefs     preference.Service
	identity  *identity.Manager
	baseURL   string
}

func NewHandler(
	calendars calendar.Service,
	records record.Service,
	prefs preference.Service,
	idm *identity.Manager,
	baseURL string,
) *Handler {
	return &Handler{
		calendars: calendars,
		records:   records,
		prefs:     prefs,
		identity:  idm,
		baseURL:   baseURL,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.NewCalendar)
	r.GET("/family/:calendarId", h.CalendarPage)
	r.POST("/family/:calendarId/name", h.SetName)
	r.GET("/family/:calendarId/days/:date", h.DayPage)
	r.POST("/family/:calendarId/days/:date", h.SubmitDay)
}

// NewCalendar (GET /) creates a fresh calendar and redirects to its
// shareable address. The per-calendar URL is the only way back in.
func (h *Handler) NewCalendar(c *gin.Context) {
	id, err := calendar.NewID()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to create calendar")
		return
	}
	if err := h.calendars.Create(c.Request.Context(), id); err != nil {
		slog.With("error", err.Error()).Error("failed to create calendar")
		c.String(http.StatusInternalServerError, "failed to create calendar")
		return
	}
	c.Redirect(http.StatusFound, "/family/"+id)
}

// CalendarPage (GET /family/{calendarId}?month=YYYY-MM) renders the month
// grid, or the name-entry gate when the device has no identity yet.
func (h *Handler) CalendarPage(c *gin.Context) {
	calendarID := c.Param("calendarId")

	name, ok := h.identity.GetUserName(c)
	if !ok {
		c.HTML(http.StatusOK, "setup.html", gin.H{
			"CalendarID": calendarID,
		})
		return
	}

	yearMonth := c.Query("month")
	if yearMonth == "" {
		yearMonth = time.Now().Format(record.YearMonthLayout)
	}
	month, err := time.Parse(record.YearMonthLayout, yearMonth)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid month")
		return
	}

	records, err := h.records.GetMonth(c.Request.Context(), calendarID, yearMonth)
	if err != nil {
		slog.With("error", err.Error()).Error("failed to load month records")
		c.String(http.StatusInternalServerError, "failed to load calendar")
		return
	}

	m := grid.Build(records, month, name)
	data := gin.H{
		"CalendarID": calendarID,
		"UserName":   name,
		"Grid":       m,
		"MonthLabel": fmt.Sprintf("%d年%d月", m.Year, int(m.Month)),
		"ShareURL":   share.URL(h.baseURL, calendarID),
	}

	// The today summary only makes sense while today's month is on screen.
	now := time.Now()
	if m.Label == now.Format(record.YearMonthLayout) {
		data["ShowToday"] = true
		data["TodayLabel"] = dayLabel(now)
		data["TodayPlan"] = record.DinnerPlan(records, now.Format(record.DateLayout))
	}
	c.HTML(http.StatusOK, "calendar.html", data)
}

func validInput(input record.AddInput) error {
	if err := record.ValidDate(input.Date); err != nil {
		return err
	}
	if input.Name == "" {
		return errors.New("name is empty")
	}
	if input.DinnerTime != nil {
		return record.ValidDinnerTime(*input.DinnerTime)
	}
	return nil
}

var jaWeekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

func dayLabel(t time.Time) string {
	return fmt.Sprintf("%d月%d日(%s)", int(t.Month()), t.Day(), jaWeekdays[t.Weekday()])
}

// SetName (POST /family/{calendarId}/name) stores the device identity and
// returns to the calendar.
func (h *Handler) SetName(c *gin.Context) {
	calendarID := c.Param("calendarId")
	if err := h.identity.SetUserName(c, c.PostForm("name")); err != nil {
		c.HTML(http.StatusBadRequest, "setup.html", gin.H{
			"CalendarID": calendarID,
			"Error":      "名前を入力してください",
		})
		return
	}
	c.Redirect(http.StatusFound, "/family/"+calendarID)
}

// DayPage (GET /family/{calendarId}/days/{date}) shows everyone's answers
// for one date plus the entry form.
func (h *Handler) DayPage(c *gin.Context) {
	calendarID := c.Param("calendarId")
	date := c.Param("date")

	if err := record.ValidDate(date); err != nil {
		c.String(http.StatusBadRequest, "invalid date")
		return
	}

	name, _ := h.identity.GetUserName(c)

	records, err := h.records.GetByDate(c.Request.Context(), calendarID, date)
	if err != nil {
		slog.With("error", err.Error()).Error("failed to load day records")
		c.String(http.StatusInternalServerError, "failed to load day")
		return
	}
	needs, skips := record.Partition(records, date)

	defaultTime := ""
	if name != "" {
		if pref, err := h.prefs.Get(c.Request.Context(), calendarID, name); err == nil && pref.DefaultDinnerTime != nil {
			defaultTime = *pref.DefaultDinnerTime
		} else if err != nil && !errors.Is(err, preference.NotFound) {
			slog.Warn("failed to load preference", "calendarId", calendarID, "error", err.Error())
		}
	}

	c.HTML(http.StatusOK, "day.html", gin.H{
		"CalendarID":  calendarID,
		"Date":        date,
		"UserName":    name,
		"NeedsDinner": needs,
		"NoDinner":    skips,
		"DinnerCount": len(needs),
		"DefaultTime": defaultTime,
	})
}

// SubmitDay (POST /family/{calendarId}/days/{date}) appends an answer from
// the day form. It never merges with an earlier answer; the projection
// resolves the current one.
func (h *Handler) SubmitDay(c *gin.Context) {
	calendarID := c.Param("calendarId")
	date := c.Param("date")

	name := c.PostForm("name")
	if name == "" {
		name, _ = h.identity.GetUserName(c)
	}
	input := record.AddInput{
		Date:        date,
		Name:        name,
		NeedsDinner: c.PostForm("needsDinner") == "true",
	}
	if t := c.PostForm("dinnerTime"); t != "" {
		input.DinnerTime = &t
	}
	if err := validInput(input); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.records.Add(c.Request.Context(), calendarID, input); err != nil {
		slog.With("error", err.Error()).Error("failed to add dinner record")
		c.String(http.StatusInternalServerError, "failed to save answer")
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/family/%s/days/%s", calendarID, date))
}
