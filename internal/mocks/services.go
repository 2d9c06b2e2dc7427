package mocks

import (
	"context"
	"io"

	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/service"
)

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	ImportFunc func(ctx context.Context, req *models.ImportRequest) (*models.ImportResult, error)
	Requests   []*models.ImportRequest
	Records    map[string]*models.ImportRecord
	CountError error
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{
		Records: make(map[string]*models.ImportRecord),
	}
}

func (m *MockImportService) Import(ctx context.Context, req *models.ImportRequest) (*models.ImportResult, error) {
	m.Requests = append(m.Requests, req)
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, req)
	}
	return &models.ImportResult{OK: true, RecordCount: 1, ImportID: "test-import-id"}, nil
}

func (m *MockImportService) GetImport(ctx context.Context, id string) (*models.ImportRecord, error) {
	return m.Records[id], nil
}

func (m *MockImportService) ListImports(ctx context.Context, limit int) ([]*models.ImportRecord, error) {
	out := make([]*models.ImportRecord, 0, len(m.Records))
	for _, r := range m.Records {
		out = append(out, r)
	}
	return out, nil
}

func (m *MockImportService) CountImports(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.Records), nil
}

// MockLookupService is a mock implementation of LookupService
type MockLookupService struct {
	Results map[string]*models.SearchResult
	Queries []string
}

// Verify interface compliance
var _ service.LookupService = (*MockLookupService)(nil)

func NewMockLookupService() *MockLookupService {
	return &MockLookupService{
		Results: make(map[string]*models.SearchResult),
	}
}

func (m *MockLookupService) Search(ctx context.Context, query string) *models.SearchResult {
	m.Queries = append(m.Queries, query)
	if r, ok := m.Results[query]; ok {
		return r
	}
	return &models.SearchResult{Query: query, Searched: query != ""}
}

// MockRosterService is a mock implementation of RosterService
type MockRosterService struct {
	Attendees     []models.Attendee
	ReplaceErrors []models.ValidationError
	ResetCalls    int
}

// Verify interface compliance
var _ service.RosterService = (*MockRosterService)(nil)

func NewMockRosterService() *MockRosterService {
	return &MockRosterService{Attendees: models.DefaultRoster()}
}

func (m *MockRosterService) Snapshot(ctx context.Context) []models.Attendee {
	return m.Attendees
}

func (m *MockRosterService) Count(ctx context.Context) int {
	return len(m.Attendees)
}

func (m *MockRosterService) Replace(ctx context.Context, attendees []models.Attendee) ([]models.ValidationError, error) {
	if len(m.ReplaceErrors) > 0 {
		return m.ReplaceErrors, nil
	}
	m.Attendees = attendees
	return nil, nil
}

func (m *MockRosterService) Reset(ctx context.Context) {
	m.ResetCalls++
	m.Attendees = models.DefaultRoster()
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	ExportFunc func(ctx context.Context, w io.Writer, format service.Format) (int, error)
	Formats    []service.Format
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{}
}

func (m *MockExportService) Export(ctx context.Context, w io.Writer, format service.Format) (int, error) {
	m.Formats = append(m.Formats, format)
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, w, format)
	}
	if _, err := io.WriteString(w, "王大明\t1\t主桌\n"); err != nil {
		return 0, err
	}
	return 1, nil
}
