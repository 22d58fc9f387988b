package validation

import (
	"strings"
	"unicode"
)

// MaxQueryLength bounds inbound query strings before any resolver work.
const MaxQueryLength = 300

// ValidateQuery checks an inbound free-text query at the boundary: present,
// within length, and free of control characters.
func ValidateQuery(query string) (bool, string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return false, "query is required"
	}
	if len(trimmed) > MaxQueryLength {
		return false, "query is too long"
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) && r != '\t' {
			return false, "query contains invalid characters"
		}
	}
	return true, ""
}

// NormalizeQuery trims and collapses whitespace so equivalent queries cache
// and log identically.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
