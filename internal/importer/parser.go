// Package importer turns text pasted from a spreadsheet, or typed by hand,
// into roster entries.
//
// Each non-blank line is one attendee: name, table and an optional note,
// separated by tabs. Lines without a tab fall back to commas, either the
// ASCII comma or the full-width comma used by CJK input methods.
package importer

import (
	"errors"
	"strings"

	"github.com/seat-finder-api/internal/models"
)

var (
	// ErrEmptyInput is returned when the raw text is empty or whitespace only
	ErrEmptyInput = errors.New("empty input")
	// ErrUnrecognizedFormat is returned when no line has both a name and a table
	ErrUnrecognizedFormat = errors.New("unrecognized format: each line needs a name and a table")
)

// Stats describes how the lines of an input were consumed
type Stats struct {
	LinesRead    int
	BlankLines   int
	DroppedLines int
	Records      int
}

// Parse converts raw text into attendees, preserving line order.
// Lines that do not yield both a name and a table are skipped.
func Parse(raw string) ([]models.Attendee, Stats, error) {
	var stats Stats

	if strings.TrimSpace(raw) == "" {
		return nil, stats, ErrEmptyInput
	}

	var attendees []models.Attendee
	for _, line := range strings.Split(raw, "\n") {
		stats.LinesRead++

		line = strings.TrimSpace(line)
		if line == "" {
			stats.BlankLines++
			continue
		}

		attendee, ok := ParseLine(line)
		if !ok {
			stats.DroppedLines++
			continue
		}
		attendees = append(attendees, attendee)
	}

	stats.Records = len(attendees)
	if len(attendees) == 0 {
		return nil, stats, ErrUnrecognizedFormat
	}

	return attendees, stats, nil
}

// ParseLine extracts one attendee from a single trimmed line
func ParseLine(line string) (models.Attendee, bool) {
	fields := splitFields(line)
	if len(fields) < 2 {
		return models.Attendee{}, false
	}

	attendee := models.Attendee{
		Name:  strings.TrimSpace(fields[0]),
		Table: strings.TrimSpace(fields[1]),
	}
	if len(fields) > 2 {
		attendee.Note = strings.TrimSpace(fields[2])
	}

	if attendee.Name == "" || attendee.Table == "" {
		return models.Attendee{}, false
	}
	return attendee, true
}

// splitFields splits on tabs, falling back to ASCII or full-width commas
func splitFields(line string) []string {
	fields := strings.Split(line, "\t")
	if len(fields) >= 2 {
		return fields
	}
	return strings.Split(strings.ReplaceAll(line, "，", ","), ",")
}
