package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seat-finder-api/internal/models"
)

var contactRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{2,}$`)

// Field length limits for roster entries
const (
	MaxNameLength  = 100
	MaxTableLength = 32
	MaxNoteLength  = 200
)

// Validator checks roster entries submitted as JSON
type Validator struct {
	maxRecords int
}

// NewValidator creates a new validator instance. maxRecords <= 0 means no cap.
func NewValidator(maxRecords int) *Validator {
	return &Validator{maxRecords: maxRecords}
}

// Normalize trims every field of an attendee in place
func Normalize(a *models.Attendee) {
	a.Name = strings.TrimSpace(a.Name)
	a.Table = strings.TrimSpace(a.Table)
	a.Note = strings.TrimSpace(a.Note)
	a.Contact = strings.TrimSpace(a.Contact)
}

// ValidateAttendee validates a single, already normalized, attendee.
// Line is left zero; ValidateRoster fills it in.
func (v *Validator) ValidateAttendee(a *models.Attendee) []models.ValidationError {
	var errors []models.ValidationError

	// Validate name
	if a.Name == "" {
		errors = append(errors, models.ValidationError{Field: "name", Message: "name is required"})
	} else if utf8.RuneCountInString(a.Name) > MaxNameLength {
		errors = append(errors, models.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name exceeds maximum of %d characters", MaxNameLength),
			Value:   a.Name,
		})
	} else if hasControlChar(a.Name) {
		errors = append(errors, controlCharError("name", a.Name))
	}

	// Validate table
	if a.Table == "" {
		errors = append(errors, models.ValidationError{Field: "table", Message: "table is required"})
	} else if utf8.RuneCountInString(a.Table) > MaxTableLength {
		errors = append(errors, models.ValidationError{
			Field:   "table",
			Message: fmt.Sprintf("table exceeds maximum of %d characters", MaxTableLength),
			Value:   a.Table,
		})
	} else if hasControlChar(a.Table) {
		errors = append(errors, controlCharError("table", a.Table))
	}

	if utf8.RuneCountInString(a.Note) > MaxNoteLength {
		errors = append(errors, models.ValidationError{
			Field:   "note",
			Message: fmt.Sprintf("note exceeds maximum of %d characters", MaxNoteLength),
		})
	} else if hasControlChar(a.Note) {
		errors = append(errors, controlCharError("note", a.Note))
	}

	// Validate contact format if present
	if a.Contact != "" && !contactRegex.MatchString(a.Contact) {
		errors = append(errors, models.ValidationError{Field: "contact", Message: "invalid phone number format", Value: a.Contact})
	}

	return errors
}

// Tabs and line breaks would split the field when the roster is exported as
// TSV and imported again.
func hasControlChar(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

func controlCharError(field, value string) models.ValidationError {
	return models.ValidationError{
		Field:   field,
		Message: field + " must not contain tabs, line breaks or other control characters",
		Value:   value,
	}
}

// ValidateRoster normalizes and validates a whole roster. Errors carry the
// 1-based position of the offending entry in Line.
func (v *Validator) ValidateRoster(roster []models.Attendee) []models.ValidationError {
	var errors []models.ValidationError

	if len(roster) == 0 {
		return append(errors, models.ValidationError{Field: "attendees", Message: "at least one attendee is required"})
	}
	if v.maxRecords > 0 && len(roster) > v.maxRecords {
		return append(errors, models.ValidationError{
			Field:   "attendees",
			Message: fmt.Sprintf("roster exceeds maximum of %d attendees", v.maxRecords),
			Value:   len(roster),
		})
	}

	for i := range roster {
		Normalize(&roster[i])
		for _, e := range v.ValidateAttendee(&roster[i]) {
			e.Line = i + 1
			errors = append(errors, e)
		}
	}

	return errors
}
