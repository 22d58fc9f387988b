package search

import (
	"sort"
	"strings"
	"unicode"
)

// Generic words that carry no signal for a trip/client lookup.
var baseStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "for": true, "with": true,
	"all": true, "any": true, "this": true, "that": true, "about": true,
	"trip": true, "trips": true, "client": true, "clients": true,
	"show": true, "find": true, "get": true, "give": true, "tell": true,
	"details": true, "info": true, "information": true, "record": true,
	"please": true, "lookup": true, "look": true, "search": true, "me": true,
}

// Optimizer normalizes raw query text and produces an ordered list of
// weighted, distinctive terms. It is pure: no I/O, deterministic output.
type Optimizer struct {
	maxTerms int
	minLen   int
	stop     map[string]bool
}

// NewOptimizer builds an optimizer from the resolver config.
func NewOptimizer(cfg Config) *Optimizer {
	cfg = cfg.withDefaults()
	stop := make(map[string]bool, len(baseStopWords)+len(cfg.StopWords))
	for w := range baseStopWords {
		stop[w] = true
	}
	for _, w := range cfg.StopWords {
		stop[strings.ToLower(w)] = true
	}
	return &Optimizer{maxTerms: cfg.MaxTerms, minLen: cfg.MinTermLength, stop: stop}
}

// Normalize lower-cases the query and folds punctuation variants that denote
// the same logical token, so "Smith & Jones" matches "smith and jones".
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "&", " and ")
	return strings.Join(strings.Fields(s), " ")
}

// Optimize returns the normalized query and its weighted terms, capped at
// the configured maximum. Identifier-looking tokens (emails, codes, digit
// runs) rank highest, then longer alphabetic tokens; ties keep the original
// left-to-right order.
func (o *Optimizer) Optimize(raw string) (string, []WeightedTerm) {
	normalized := Normalize(raw)

	rawTokens := splitTokens(raw)
	terms := make([]WeightedTerm, 0, len(rawTokens))
	seen := make(map[string]bool, len(rawTokens))
	for _, tok := range rawTokens {
		lower := strings.ToLower(tok)
		if len([]rune(lower)) < o.minLen || o.stop[lower] || seen[lower] {
			continue
		}
		seen[lower] = true
		terms = append(terms, weighTerm(tok, lower))
	}

	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Weight > terms[j].Weight
	})
	if len(terms) > o.maxTerms {
		terms = terms[:o.maxTerms]
	}
	return normalized, terms
}

// splitTokens breaks the raw query on whitespace and punctuation while
// keeping emails, dotted hosts, and hyphenated slugs intact.
func splitTokens(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		switch r {
		case '@', '.', '-', '_':
			return false
		}
		return true
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".-_")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// weighTerm assigns a deterministic weight. tok is the original-cased token
// (all-caps codes only show up there); lower is its lowered form used as the
// term text.
func weighTerm(tok, lower string) WeightedTerm {
	if looksLikeIdentifier(tok) {
		return WeightedTerm{Term: lower, Weight: 3, Reason: ReasonIdentifier}
	}
	if len([]rune(lower)) >= 6 && isAlphabetic(lower) {
		return WeightedTerm{Term: lower, Weight: 2, Reason: ReasonDistinctive}
	}
	return WeightedTerm{Term: lower, Weight: 1, Reason: ReasonFiller}
}

func looksLikeIdentifier(tok string) bool {
	if strings.Contains(tok, "@") {
		return true
	}
	hasDigit := false
	hasLower := false
	hasUpper := false
	for _, r := range tok {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if hasDigit && !hasLower && !hasUpper {
		return true // bare digit run
	}
	if hasDigit && (hasLower || hasUpper) {
		return true // mixed code like "BK2041"
	}
	// all-caps code of at least two letters
	return hasUpper && !hasLower && len([]rune(tok)) >= 2
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
