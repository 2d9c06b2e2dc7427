package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/config"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/repository"
)

// ImportService defines the interface for raw text imports
type ImportService interface {
	Import(ctx context.Context, req *models.ImportRequest) (*models.ImportResult, error)
	GetImport(ctx context.Context, id string) (*models.ImportRecord, error)
	ListImports(ctx context.Context, limit int) ([]*models.ImportRecord, error)
	CountImports(ctx context.Context) (int, error)
}

// LookupService defines the interface for seat lookups
type LookupService interface {
	Search(ctx context.Context, query string) *models.SearchResult
}

// RosterService defines the interface for direct roster management
type RosterService interface {
	Snapshot(ctx context.Context) []models.Attendee
	Count(ctx context.Context) int
	Replace(ctx context.Context, attendees []models.Attendee) ([]models.ValidationError, error)
	Reset(ctx context.Context)
}

// ExportService defines the interface for roster export
type ExportService interface {
	Export(ctx context.Context, w io.Writer, format Format) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Import ImportService
	Lookup LookupService
	Roster RosterService
	Export ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Import: newImportService(repos, log),
		Lookup: newLookupService(repos.Roster, log),
		Roster: newRosterService(repos.Roster, cfg, log),
		Export: newExportService(repos.Roster, log),
	}
}
