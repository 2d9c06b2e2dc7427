package repository

import (
	"context"

	"github.com/seat-finder-api/internal/models"
)

// RosterRepository holds the current roster. The roster is only ever
// replaced as a whole; readers see either the old or the new roster.
type RosterRepository interface {
	Replace(records []models.Attendee)
	ResetToDefault()
	Snapshot() []models.Attendee
	Count() int
}

// ImportRepository keeps the history of import attempts
type ImportRepository interface {
	Create(ctx context.Context, record *models.ImportRecord) error
	GetByID(ctx context.Context, id string) (*models.ImportRecord, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.ImportRecord, error)
	List(ctx context.Context, limit int) ([]*models.ImportRecord, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Roster RosterRepository
	Import ImportRepository
}

// New creates all repositories. Nothing is persisted: a new set of
// repositories always starts from the default roster and an empty history.
func New(historyLimit int) *Repositories {
	return &Repositories{
		Roster: NewRosterRepo(),
		Import: NewImportRepo(historyLimit),
	}
}
