package search

import (
	"testing"

	"tripsearch/internal/models"
)

func TestDetectSlug(t *testing.T) {
	tests := []struct {
		name  string
		query string
		slug  string
		ok    bool
	}{
		{"hyphenated slug", "acme-corp-retreat-2025", "acme-corp-retreat-2025", true},
		{"spaced slug", "Acme Corp Retreat 2025", "acme-corp-retreat-2025", true},
		{"mixed separators", "acme-corp retreat 2025", "acme-corp-retreat-2025", true},
		{"no trailing year", "acme corp retreat", "", false},
		{"year only", "2025", "", false},
		{"single word plus year", "retreat 1987", "", false},
		{"two words plus year", "bath spa 2024", "bath-spa-2024", true},
		{"year not last", "2025 acme retreat", "", false},
		{"names only", "sara darren bristol", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, ok := DetectSlug(tt.query)
			if ok != tt.ok || slug != tt.slug {
				t.Errorf("DetectSlug(%q) = (%q, %v), want (%q, %v)", tt.query, slug, ok, tt.slug, tt.ok)
			}
		})
	}
}

func TestDetectNumericID(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		id          int64
		contextType models.ContextType
		ok          bool
	}{
		{"bare integer", "482", 482, models.ContextTrip, true},
		{"trip qualified", "trip 482", 482, models.ContextTrip, true},
		{"trip id", "trip id 482", 482, models.ContextTrip, true},
		{"client qualified", "client 17", 17, models.ContextClient, true},
		{"hash prefix", "trip #482", 482, models.ContextTrip, true},
		{"number word", "trip number 9", 9, models.ContextTrip, true},
		{"two integers", "2 adults 3", 0, "", false},
		{"stray word", "booking 482", 0, "", false},
		{"no integer", "trip id", 0, "", false},
		{"empty", "  ", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, contextType, ok := DetectNumericID(tt.query)
			if ok != tt.ok || id != tt.id || contextType != tt.contextType {
				t.Errorf("DetectNumericID(%q) = (%d, %q, %v), want (%d, %q, %v)",
					tt.query, id, contextType, ok, tt.id, tt.contextType, tt.ok)
			}
		})
	}
}
