package search

import (
	"regexp"
	"strconv"
	"strings"

	"tripsearch/internal/models"
)

// slugShape matches "word word ... YYYY" or "word-word-...-YYYY": at least
// two words followed by a four-digit year, space-or-hyphen agnostic.
var slugShape = regexp.MustCompile(`^[a-z0-9]+(?:[-\s]+[a-z0-9]+)+[-\s]+(?:19|20)\d{2}$`)

var slugSeparators = regexp.MustCompile(`[-\s]+`)

// DetectSlug reports whether the query has the URL-slug shape and returns
// the canonical hyphenated slug for an exact equality lookup.
func DetectSlug(raw string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(raw))
	if !slugShape.MatchString(q) {
		return "", false
	}
	return slugSeparators.ReplaceAllString(q, "-"), true
}

// numeric-identifier qualifier words; anything else in the query disqualifies
// the shape so detectors never partially consume a query.
var idQualifiers = map[string]bool{
	"trip": true, "client": true, "id": true, "no": true, "number": true, "#": true,
}

// DetectNumericID reports whether the query is a bare integer identifier,
// optionally qualified by "trip" or "client" (defaulting to trip), and
// returns the id with the qualified entity.
func DetectNumericID(raw string) (int64, models.ContextType, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return 0, "", false
	}

	contextType := models.ContextTrip
	var id int64
	found := false
	for _, f := range fields {
		f = strings.TrimPrefix(f, "#")
		if f == "" {
			continue
		}
		if n, err := strconv.ParseInt(f, 10, 64); err == nil {
			if found {
				return 0, "", false // two integers is not an id lookup
			}
			id = n
			found = true
			continue
		}
		if !idQualifiers[f] {
			return 0, "", false
		}
		if f == "client" {
			contextType = models.ContextClient
		}
	}
	if !found {
		return 0, "", false
	}
	return id, contextType, true
}
