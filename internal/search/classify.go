package search

import (
	"strings"
	"unicode/utf8"
)

// Classifier scores a normalized query into a complexity tier from token
// count and total length. The tier exists solely to keep queries whose
// multi-term pattern predicate would trip the datastore's complexity
// limiter away from the riskier strategies.
type Classifier struct {
	simpleMaxTokens   int
	simpleMaxRunes    int
	moderateMaxTokens int
	moderateMaxRunes  int
}

// NewClassifier builds a classifier from the resolver config.
func NewClassifier(cfg Config) *Classifier {
	cfg = cfg.withDefaults()
	return &Classifier{
		simpleMaxTokens:   cfg.SimpleMaxTokens,
		simpleMaxRunes:    cfg.SimpleMaxRunes,
		moderateMaxTokens: cfg.ModerateMaxTokens,
		moderateMaxRunes:  cfg.ModerateMaxRunes,
	}
}

// Classify is monotone in token count and length: adding or lengthening
// tokens never lowers the tier.
func (c *Classifier) Classify(normalized string) Tier {
	tokens := len(strings.Fields(normalized))
	runes := utf8.RuneCountInString(normalized)

	if tokens <= c.simpleMaxTokens && runes <= c.simpleMaxRunes {
		return TierSimple
	}
	if tokens <= c.moderateMaxTokens && runes <= c.moderateMaxRunes {
		return TierModerate
	}
	return TierComplex
}
