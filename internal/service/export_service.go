package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/repository"
)

// Format is a roster export format
type Format string

const (
	// FormatTSV writes one tab-separated line per attendee, the same shape
	// the importer reads, so an export can be pasted back as an import.
	// Contact is not written: the text importer has no column for it, so
	// contacts are lost on a TSV round trip. Use json to keep them.
	FormatTSV    Format = "tsv"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTSV, FormatCSV, FormatJSON, FormatNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatNDJSON:
		return "application/x-ndjson"
	default:
		return "text/tab-separated-values; charset=utf-8"
	}
}

// exportService is the concrete implementation of ExportService
type exportService struct {
	roster repository.RosterRepository
	log    zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(roster repository.RosterRepository, log zerolog.Logger) *exportService {
	return &exportService{
		roster: roster,
		log:    log.With().Str("service", "export").Logger(),
	}
}

// Export writes a snapshot of the roster to w and returns the number of attendees written
func (s *exportService) Export(ctx context.Context, w io.Writer, format Format) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	attendees := s.roster.Snapshot()

	var err error
	switch format {
	case FormatTSV:
		err = writeTSV(w, attendees)
	case FormatCSV:
		err = writeCSV(w, attendees)
	case FormatJSON:
		err = json.NewEncoder(w).Encode(attendees)
	case FormatNDJSON:
		err = writeNDJSON(w, attendees)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to export roster as %s: %w", format, err)
	}

	s.log.Info().Str("format", string(format)).Int("count", len(attendees)).Msg("Roster export completed")
	return len(attendees), nil
}

// writeTSV writes name, table and note only.
func writeTSV(w io.Writer, attendees []models.Attendee) error {
	bw := bufio.NewWriter(w)
	for _, a := range attendees {
		fields := []string{a.Name, a.Table}
		if a.Note != "" {
			fields = append(fields, a.Note)
		}
		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSV(w io.Writer, attendees []models.Attendee) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(attendees) == 0 {
		if err := enc.EncodeHeader(models.Attendee{}); err != nil {
			return err
		}
	}
	for _, a := range attendees {
		if err := enc.Encode(a); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeNDJSON(w io.Writer, attendees []models.Attendee) error {
	enc := json.NewEncoder(w)
	for _, a := range attendees {
		if err := enc.Encode(a); err != nil {
			return err
		}
	}
	return nil
}
