package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/lookup"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/repository"
)

// lookupService is the concrete implementation of LookupService
type lookupService struct {
	roster repository.RosterRepository
	log    zerolog.Logger
}

func newLookupService(roster repository.RosterRepository, log zerolog.Logger) *lookupService {
	return &lookupService{
		roster: roster,
		log:    log.With().Str("service", "lookup").Logger(),
	}
}

// Search resolves query against the current roster. A blank query is
// reported as not searched rather than not found.
func (s *lookupService) Search(ctx context.Context, query string) *models.SearchResult {
	result := &models.SearchResult{Query: strings.TrimSpace(query)}
	if result.Query == "" {
		return result
	}

	result.Searched = true
	if attendee, ok := lookup.Search(result.Query, s.roster.Snapshot()); ok {
		result.Found = true
		result.Attendee = &attendee
	}

	s.log.Debug().
		Bool("found", result.Found).
		Int("query_len", len([]rune(result.Query))).
		Msg("Lookup completed")

	return result
}
