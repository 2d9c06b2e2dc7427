package repository

import (
	"sync/atomic"

	"github.com/seat-finder-api/internal/models"
)

// rosterRepo is the in-memory implementation of RosterRepository.
// The stored slice is never mutated after it is published.
type rosterRepo struct {
	current atomic.Pointer[[]models.Attendee]
}

// NewRosterRepo creates a roster repository holding the default roster
func NewRosterRepo() RosterRepository {
	r := &rosterRepo{}
	r.ResetToDefault()
	return r
}

// Replace swaps the whole roster for a copy of records
func (r *rosterRepo) Replace(records []models.Attendee) {
	next := make([]models.Attendee, len(records))
	copy(next, records)
	r.current.Store(&next)
}

// ResetToDefault restores the seed roster
func (r *rosterRepo) ResetToDefault() {
	seed := models.DefaultRoster()
	r.current.Store(&seed)
}

// Snapshot returns a copy of the current roster
func (r *rosterRepo) Snapshot() []models.Attendee {
	cur := *r.current.Load()
	out := make([]models.Attendee, len(cur))
	copy(out, cur)
	return out
}

// Count returns the number of attendees on the roster
func (r *rosterRepo) Count() int {
	return len(*r.current.Load())
}
