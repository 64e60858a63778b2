package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bangohan/services/preference"
	"bangohan/services/record"
	"bangohan/utils"
)

// GetIdentity (GET /api/v1/identity)
func (s *Server) GetIdentity(c *gin.Context) {
	name, ok := s.identity.GetUserName(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no identity set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

type putIdentityRequest struct {
	Name string `json:"name"`
}

// PutIdentity (PUT /api/v1/identity)
func (s *Server) PutIdentity(c *gin.Context) {
	req := putIdentityRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.identity.SetUserName(c, req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteIdentity (DELETE /api/v1/identity)
func (s *Server) DeleteIdentity(c *gin.Context) {
	s.identity.ClearUserName(c)
	c.Status(http.StatusNoContent)
}

// GetPreference (GET /api/v1/calendars/{calendarId}/preferences/{userName})
func (s *Server) GetPreference(c *gin.Context) {
	pref, err := s.prefs.Get(c.Request.Context(), c.Param("calendarId"), c.Param("userName"))
	if err != nil {
		if errors.Is(err, preference.NotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preference not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pref)
}

type putPreferenceRequest struct {
	DefaultDinnerTime string `json:"defaultDinnerTime"`
}

// PutPreference (PUT /api/v1/calendars/{calendarId}/preferences/{userName})
func (s *Server) PutPreference(c *gin.Context) {
	req := putPreferenceRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref := preference.UserPreference{
		CalendarID: c.Param("calendarId"),
		UserName:   c.Param("userName"),
	}
	if req.DefaultDinnerTime != "" {
		if err := record.ValidDinnerTime(req.DefaultDinnerTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pref.DefaultDinnerTime = utils.ToPointer(req.DefaultDinnerTime)
	}

	if err := s.prefs.Upsert(c.Request.Context(), pref); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
