package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/service"
)

// RosterHandler handles roster endpoints
type RosterHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewRosterHandler creates a new RosterHandler
func NewRosterHandler(services *service.Services, log zerolog.Logger) *RosterHandler {
	return &RosterHandler{
		services: services,
		log:      log.With().Str("handler", "roster").Logger(),
	}
}

// GetRoster handles GET /v1/roster
func (h *RosterHandler) GetRoster(c *gin.Context) {
	attendees := h.services.Roster.Snapshot(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"count":     len(attendees),
		"attendees": attendees,
	})
}

// ReplaceRoster handles PUT /v1/roster
// This is the only path that can set an attendee's contact number.
func (h *RosterHandler) ReplaceRoster(c *gin.Context) {
	var req struct {
		Attendees []models.Attendee `json:"attendees"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	errs, err := h.services.Roster.Replace(c.Request.Context(), req.Attendees)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to replace roster")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to replace roster"})
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "roster rejected",
			"error_count": len(errs),
			"errors":      errs,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"record_count": len(req.Attendees),
	})
}

// ResetRoster handles POST /v1/roster/reset
func (h *RosterHandler) ResetRoster(c *gin.Context) {
	ctx := c.Request.Context()
	h.services.Roster.Reset(ctx)

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"record_count": h.services.Roster.Count(ctx),
		"message":      "roster restored to default",
	})
}

// ExportRoster handles GET /v1/roster/export?format=...
func (h *RosterHandler) ExportRoster(c *gin.Context) {
	raw := c.Query("format")
	if raw == "" {
		raw = string(service.FormatTSV)
	}
	format, err := service.ParseFormat(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: tsv, csv, json, ndjson"})
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=roster.%s", format))

	n, err := h.services.Export.Export(c.Request.Context(), c.Writer, format)
	if err != nil {
		h.log.Error().Err(err).Str("format", string(format)).Msg("Export failed")
		// Can't return error JSON after streaming has started
		return
	}

	h.log.Debug().Str("format", string(format)).Int("count", n).Msg("Roster exported")
}
