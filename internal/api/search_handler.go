package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/service"
)

// SearchHandler handles seat lookups
type SearchHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(services *service.Services, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		services: services,
		log:      log.With().Str("handler", "search").Logger(),
	}
}

// Search handles GET /v1/search?q=...
// A miss is a normal answer, so every outcome is a 200.
func (h *SearchHandler) Search(c *gin.Context) {
	result := h.services.Lookup.Search(c.Request.Context(), c.Query("q"))
	if result.Searched && !result.Found {
		h.log.Debug().Str("query", result.Query).Msg("No attendee matched")
	}
	c.JSON(http.StatusOK, result)
}
