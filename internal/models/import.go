package models

import (
	"time"
)

// ImportStatus represents the outcome of an import attempt
type ImportStatus string

const (
	ImportStatusSucceeded ImportStatus = "succeeded"
	ImportStatusFailed    ImportStatus = "failed"
)

// ErrorKind classifies a rejected import
type ErrorKind string

const (
	ErrorKindNone               ErrorKind = ""
	ErrorKindEmptyInput         ErrorKind = "empty_input"
	ErrorKindUnrecognizedFormat ErrorKind = "unrecognized_format"
)

// ImportResult is what the caller of an import gets back
type ImportResult struct {
	OK          bool      `json:"ok"`
	RecordCount int       `json:"record_count"`
	ErrorKind   ErrorKind `json:"error_kind,omitempty"`
	ImportID    string    `json:"import_id"`
}

// ImportRecord is one entry of the import history
type ImportRecord struct {
	ID             string       `json:"import_id"`
	Status         ImportStatus `json:"status"`
	ErrorKind      ErrorKind    `json:"error_kind,omitempty"`
	IdempotencyKey string       `json:"idempotency_key,omitempty"`
	LinesRead      int          `json:"lines_read"`
	BlankLines     int          `json:"blank_lines"`
	DroppedLines   int          `json:"dropped_lines"`
	RecordCount    int          `json:"record_count"`
	InputBytes     int          `json:"input_bytes"`
	DurationMs     int64        `json:"duration_ms"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Result converts a history entry into the caller-facing result
func (r *ImportRecord) Result() *ImportResult {
	return &ImportResult{
		OK:          r.Status == ImportStatusSucceeded,
		RecordCount: r.RecordCount,
		ErrorKind:   r.ErrorKind,
		ImportID:    r.ID,
	}
}

// ImportRequest represents a raw text import request
type ImportRequest struct {
	Text           string `json:"text" form:"text"`
	IdempotencyKey string `json:"-"` // From header
}

// ValidationError represents a single validation error
type ValidationError struct {
	Line    int         `json:"line"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}
