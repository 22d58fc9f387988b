package search

import "time"

// Config tunes the resolver. All fields have working defaults so tests can
// construct a Config with only the knobs they care about; see withDefaults.
type Config struct {
	// QueryTimeout bounds each datastore call. It must stay strictly below
	// the datastore's statement_timeout so an overrun surfaces here as a
	// recoverable signal instead of a connection-level failure.
	QueryTimeout time.Duration

	// Term optimizer
	MaxTerms      int
	MinTermLength int
	StopWords     []string // extends the built-in stop-word set

	// Classifier thresholds. Simple and moderate bounds must be ordered;
	// anything beyond the moderate bounds is complex.
	SimpleMaxTokens   int
	SimpleMaxRunes    int
	ModerateMaxTokens int
	ModerateMaxRunes  int

	// Clause builder caps, sized to stay under the datastore's
	// pattern-complexity limiter.
	MaxClauseTerms   int
	MaxPatternLength int

	// Result shaping
	CandidateLimit    int
	MaxAlternatives   int
	TripSuggestions   int
	ClientSuggestions int
}

// withDefaults returns a copy of c with zero values replaced.
func (c Config) withDefaults() Config {
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = 4 * time.Second
	}
	if c.MaxTerms <= 0 {
		c.MaxTerms = 3
	}
	if c.MinTermLength <= 0 {
		c.MinTermLength = 3
	}
	if c.SimpleMaxTokens <= 0 {
		c.SimpleMaxTokens = 2
	}
	if c.SimpleMaxRunes <= 0 {
		c.SimpleMaxRunes = 24
	}
	if c.ModerateMaxTokens <= 0 {
		c.ModerateMaxTokens = 4
	}
	if c.ModerateMaxRunes <= 0 {
		c.ModerateMaxRunes = 60
	}
	if c.MaxClauseTerms <= 0 {
		c.MaxClauseTerms = 3
	}
	if c.MaxPatternLength <= 0 {
		c.MaxPatternLength = 160
	}
	if c.CandidateLimit <= 0 {
		c.CandidateLimit = 10
	}
	if c.MaxAlternatives <= 0 {
		c.MaxAlternatives = 3
	}
	if c.TripSuggestions <= 0 {
		c.TripSuggestions = 5
	}
	if c.ClientSuggestions <= 0 {
		c.ClientSuggestions = 3
	}
	return c
}
