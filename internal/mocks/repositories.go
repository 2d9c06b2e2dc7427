package mocks

import (
	"context"

	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/repository"
)

// MockImportRepository is a mock implementation of ImportRepository
type MockImportRepository struct {
	Records     map[string]*models.ImportRecord
	Order       []string
	CreateError error
	GetError    error
	CreateCalls int
}

// Verify interface compliance
var _ repository.ImportRepository = (*MockImportRepository)(nil)

func NewMockImportRepository() *MockImportRepository {
	return &MockImportRepository{
		Records: make(map[string]*models.ImportRecord),
	}
}

func (m *MockImportRepository) Create(ctx context.Context, record *models.ImportRecord) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Records[record.ID] = record
	m.Order = append(m.Order, record.ID)
	return nil
}

func (m *MockImportRepository) GetByID(ctx context.Context, id string) (*models.ImportRecord, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Records[id], nil
}

func (m *MockImportRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.ImportRecord, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, r := range m.Records {
		if r.IdempotencyKey == key {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockImportRepository) List(ctx context.Context, limit int) ([]*models.ImportRecord, error) {
	var out []*models.ImportRecord
	for i := len(m.Order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.Records[m.Order[i]])
	}
	return out, nil
}

func (m *MockImportRepository) Count(ctx context.Context) (int, error) {
	return len(m.Records), nil
}
