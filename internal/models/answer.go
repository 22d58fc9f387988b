package models

import (
	"time"

	"github.com/google/uuid"
)

// ContextType identifies which kind of record a precomputed answer describes.
type ContextType string

const (
	ContextTrip   ContextType = "trip"
	ContextClient ContextType = "client"
)

// Valid reports whether the context type is one of the closed set.
func (ct ContextType) Valid() bool {
	return ct == ContextTrip || ct == ContextClient
}

// Strategy identifies which resolution strategy produced a result.
type Strategy string

const (
	StrategyExactMatch     Strategy = "exact_match"
	StrategySlugDirect     Strategy = "slug_direct_match"
	StrategyIDDirect       Strategy = "id_direct_match"
	StrategyWeightedClause Strategy = "weighted_clause"
	StrategyPartialLike    Strategy = "partial_like"
	StrategySingleWord     Strategy = "single_term_word"
	StrategySemantic       Strategy = "semantic_components"
)

// Strategies is the canonical chain order, cheapest first.
var Strategies = []Strategy{
	StrategyExactMatch,
	StrategySlugDirect,
	StrategyIDDirect,
	StrategyWeightedClause,
	StrategyPartialLike,
	StrategySingleWord,
	StrategySemantic,
}

// Valid reports whether the strategy is one of the closed set.
func (s Strategy) Valid() bool {
	for _, known := range Strategies {
		if s == known {
			return true
		}
	}
	return false
}

// PrecomputedAnswer is a cache entry keyed by natural key, written by the
// record tooling whenever a trip or client changes. The resolver only reads
// it and bumps access metadata on a hit.
type PrecomputedAnswer struct {
	ID            uuid.UUID      `json:"id"`
	NaturalKey    string         `json:"natural_key"`
	ContextType   ContextType    `json:"context_type"`
	FormattedText string         `json:"formatted_text"`
	Payload       map[string]any `json:"payload"`
	Keywords      string         `json:"keywords"`
	AccessCount   int64          `json:"access_count"`
	LastAccessed  *time.Time     `json:"last_accessed"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
