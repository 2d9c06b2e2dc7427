package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/config"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/service"
)

// ImportHandler handles import endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// importMessages are shown to the administrator for each outcome
var importMessages = map[models.ErrorKind]string{
	models.ErrorKindEmptyInput:         "no data was entered",
	models.ErrorKindUnrecognizedFormat: "format not recognized, every line needs a name and a table number",
}

// CreateImport handles POST /v1/imports
// Accepts the pasted text as a text/plain body, a JSON body {"text": "..."}
// or a form field named text.
func (h *ImportHandler) CreateImport(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cfg.Import.MaxInputBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Import.MaxInputBytes)
	}

	text, err := readImportText(c)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("input too large, max size is %d bytes", h.cfg.Import.MaxInputBytes),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := &models.ImportRequest{
		Text:           text,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}

	result, err := h.services.Import.Import(ctx, req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to import roster")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import roster"})
		return
	}

	if !result.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"ok":         false,
			"error_kind": result.ErrorKind,
			"import_id":  result.ImportID,
			"message":    importMessages[result.ErrorKind],
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"record_count": result.RecordCount,
		"import_id":    result.ImportID,
		"message":      fmt.Sprintf("imported %d attendees", result.RecordCount),
	})
}

// GetImport handles GET /v1/imports/:import_id
func (h *ImportHandler) GetImport(c *gin.Context) {
	ctx := c.Request.Context()
	importID := c.Param("import_id")
	if importID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "import_id is required"})
		return
	}

	record, err := h.services.Import.GetImport(ctx, importID)
	if err != nil {
		h.log.Error().Err(err).Str("import_id", importID).Msg("Failed to get import")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get import"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "import not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListImports handles GET /v1/imports?limit=N
func (h *ImportHandler) ListImports(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	records, err := h.services.Import.ListImports(ctx, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list imports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list imports"})
		return
	}
	if records == nil {
		records = []*models.ImportRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"imports": records,
	})
}

func readImportText(c *gin.Context) (string, error) {
	contentType := c.ContentType()

	switch {
	case contentType == gin.MIMEJSON:
		var req models.ImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", err
		}
		return req.Text, nil
	case contentType == gin.MIMEPOSTForm || strings.HasPrefix(contentType, gin.MIMEMultipartPOSTForm):
		var req models.ImportRequest
		if err := c.ShouldBind(&req); err != nil {
			return "", err
		}
		return req.Text, nil
	default:
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
}
