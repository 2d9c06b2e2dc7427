package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/config"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/repository"
	"github.com/seat-finder-api/internal/validation"
)

// rosterService is the concrete implementation of RosterService
type rosterService struct {
	roster     repository.RosterRepository
	maxRecords int
	log        zerolog.Logger
}

func newRosterService(roster repository.RosterRepository, cfg *config.Config, log zerolog.Logger) *rosterService {
	return &rosterService{
		roster:     roster,
		maxRecords: cfg.Import.MaxRosterRecords,
		log:        log.With().Str("service", "roster").Logger(),
	}
}

// Snapshot returns the current roster
func (s *rosterService) Snapshot(ctx context.Context) []models.Attendee {
	return s.roster.Snapshot()
}

// Count returns the current roster size
func (s *rosterService) Count(ctx context.Context) int {
	return s.roster.Count()
}

// Replace validates a structured roster and swaps it in. Unlike the text
// import it may carry contact numbers. Nothing changes if any entry is invalid.
func (s *rosterService) Replace(ctx context.Context, attendees []models.Attendee) ([]models.ValidationError, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next := make([]models.Attendee, len(attendees))
	copy(next, attendees)

	validator := validation.NewValidator(s.maxRecords)
	if errs := validator.ValidateRoster(next); len(errs) > 0 {
		s.log.Warn().Int("errors", len(errs)).Msg("Roster replacement rejected")
		return errs, nil
	}

	s.roster.Replace(next)
	s.log.Info().Int("records", len(next)).Msg("Roster replaced")
	return nil, nil
}

// Reset restores the default roster
func (s *rosterService) Reset(ctx context.Context) {
	s.roster.ResetToDefault()
	s.log.Info().Int("records", s.roster.Count()).Msg("Roster reset to default")
}
