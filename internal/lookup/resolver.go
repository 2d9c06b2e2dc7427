// Package lookup resolves a free-text query to a single roster entry.
package lookup

import (
	"strings"

	"github.com/seat-finder-api/internal/models"
)

// Search returns the first attendee, in roster order, whose name contains
// the trimmed query. Contact is matched the same way when it is set.
// Matching is case-sensitive and applies no normalization.
// A blank query matches nothing and the roster is not scanned.
func Search(query string, roster []models.Attendee) (models.Attendee, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return models.Attendee{}, false
	}

	for _, a := range roster {
		if Matches(a, q) {
			return a, true
		}
	}
	return models.Attendee{}, false
}

// Matches reports whether q is a substring of the attendee's name or contact
func Matches(a models.Attendee, q string) bool {
	if strings.Contains(a.Name, q) {
		return true
	}
	return a.Contact != "" && strings.Contains(a.Contact, q)
}
