package validation

import (
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		valid bool
	}{
		{"plain query", "sara darren bristol", true},
		{"surrounding whitespace", "  acme retreat  ", true},
		{"embedded tab", "acme\tretreat", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too long", strings.Repeat("a", MaxQueryLength+1), false},
		{"at the limit", strings.Repeat("a", MaxQueryLength), true},
		{"control character", "acme\x00retreat", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateQuery(tt.query)
			if valid != tt.valid {
				t.Errorf("ValidateQuery(%q) = %v (%s), want %v", tt.query, valid, msg, tt.valid)
			}
			if !valid && msg == "" {
				t.Error("invalid query produced no message")
			}
		})
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  sara   darren ", "sara darren"},
		{"acme\tretreat", "acme retreat"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeQuery(tt.in); got != tt.want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
