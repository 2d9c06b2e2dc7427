package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/importer"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/repository"
)

// importService is the concrete implementation of ImportService
type importService struct {
	repos *repository.Repositories
	log   zerolog.Logger
	// mu serializes imports so the roster has a single writer
	mu sync.Mutex
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, log zerolog.Logger) *importService {
	return &importService{
		repos: repos,
		log:   log.With().Str("service", "import").Logger(),
	}
}

// Import parses raw text and, when at least one attendee was recognized,
// replaces the roster with it. Rejected input is reported through the
// result; the returned error is only set when the import could not run.
func (s *importService) Import(ctx context.Context, req *models.ImportRequest) (*models.ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replay an earlier attempt made with the same idempotency key
	if req.IdempotencyKey != "" {
		existing, err := s.repos.Import.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to check idempotency key")
		}
		if existing != nil {
			s.log.Info().Str("import_id", existing.ID).Msg("Returning existing import for idempotency key")
			return existing.Result(), nil
		}
	}

	startTime := time.Now()
	attendees, stats, parseErr := importer.Parse(req.Text)

	record := &models.ImportRecord{
		ID:             uuid.New().String(),
		IdempotencyKey: req.IdempotencyKey,
		LinesRead:      stats.LinesRead,
		BlankLines:     stats.BlankLines,
		DroppedLines:   stats.DroppedLines,
		InputBytes:     len(req.Text),
		CreatedAt:      startTime,
	}

	switch {
	case parseErr == nil:
		s.repos.Roster.Replace(attendees)
		record.Status = models.ImportStatusSucceeded
		record.RecordCount = len(attendees)
	case errors.Is(parseErr, importer.ErrEmptyInput):
		record.Status = models.ImportStatusFailed
		record.ErrorKind = models.ErrorKindEmptyInput
	case errors.Is(parseErr, importer.ErrUnrecognizedFormat):
		record.Status = models.ImportStatusFailed
		record.ErrorKind = models.ErrorKindUnrecognizedFormat
	default:
		return nil, parseErr
	}
	record.DurationMs = time.Since(startTime).Milliseconds()

	// History is best effort; the roster outcome above stands either way
	if err := s.repos.Import.Create(context.WithoutCancel(ctx), record); err != nil {
		s.log.Error().Err(err).Str("import_id", record.ID).Msg("Failed to record import")
	}

	if record.Status == models.ImportStatusSucceeded {
		s.log.Info().
			Str("import_id", record.ID).
			Int("records", record.RecordCount).
			Int("lines", record.LinesRead).
			Int("dropped", record.DroppedLines).
			Int64("duration_ms", record.DurationMs).
			Msg("Roster imported")
	} else {
		s.log.Warn().
			Str("import_id", record.ID).
			Str("error_kind", string(record.ErrorKind)).
			Int("lines", record.LinesRead).
			Msg("Import rejected")
	}

	return record.Result(), nil
}

// GetImport retrieves an import attempt by ID
func (s *importService) GetImport(ctx context.Context, id string) (*models.ImportRecord, error) {
	return s.repos.Import.GetByID(ctx, id)
}

// ListImports returns recent import attempts, newest first
func (s *importService) ListImports(ctx context.Context, limit int) ([]*models.ImportRecord, error) {
	return s.repos.Import.List(ctx, limit)
}

// CountImports returns the number of attempts kept in history
func (s *importService) CountImports(ctx context.Context) (int, error) {
	return s.repos.Import.Count(ctx)
}
