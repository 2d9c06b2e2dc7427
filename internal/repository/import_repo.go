package repository

import (
	"context"
	"sync"

	"github.com/seat-finder-api/internal/models"
)

// DefaultHistoryLimit caps the import history when no limit is configured
const DefaultHistoryLimit = 100

// importRepo is the in-memory implementation of ImportRepository
type importRepo struct {
	mu      sync.RWMutex
	limit   int
	records []*models.ImportRecord // oldest first
	byID    map[string]*models.ImportRecord
	byKey   map[string]*models.ImportRecord
}

// NewImportRepo creates an import history holding at most limit entries
func NewImportRepo(limit int) ImportRepository {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &importRepo{
		limit: limit,
		byID:  make(map[string]*models.ImportRecord),
		byKey: make(map[string]*models.ImportRecord),
	}
}

// Create appends an import attempt, evicting the oldest entry when full
func (r *importRepo) Create(ctx context.Context, record *models.ImportRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.records) >= r.limit {
		oldest := r.records[0]
		r.records = r.records[1:]
		delete(r.byID, oldest.ID)
		if oldest.IdempotencyKey != "" && r.byKey[oldest.IdempotencyKey] == oldest {
			delete(r.byKey, oldest.IdempotencyKey)
		}
	}

	stored := *record
	r.records = append(r.records, &stored)
	r.byID[stored.ID] = &stored
	if stored.IdempotencyKey != "" {
		r.byKey[stored.IdempotencyKey] = &stored
	}
	return nil
}

// GetByID retrieves an import attempt, or nil when it is unknown
func (r *importRepo) GetByID(ctx context.Context, id string) (*models.ImportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.byID[id]), nil
}

// GetByIdempotencyKey retrieves the attempt made with key, or nil
func (r *importRepo) GetByIdempotencyKey(ctx context.Context, key string) (*models.ImportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.byKey[key]), nil
}

// List returns the most recent attempts, newest first. limit <= 0 returns all.
func (r *importRepo) List(ctx context.Context, limit int) ([]*models.ImportRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.records)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*models.ImportRecord, 0, n)
	for i := len(r.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, clone(r.records[i]))
	}
	return out, nil
}

// Count returns the number of attempts currently kept
func (r *importRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records), nil
}

func clone(record *models.ImportRecord) *models.ImportRecord {
	if record == nil {
		return nil
	}
	c := *record
	return &c
}
