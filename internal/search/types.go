package search

import (
	"context"

	"tripsearch/internal/models"
)

// Tier classifies how syntactically risky a query is to resolve against the
// datastore's pattern matcher. Higher tiers are gated away from multi-term
// pattern predicates.
type Tier int

const (
	TierSimple Tier = iota
	TierModerate
	TierComplex
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierSimple:
		return "simple"
	case TierModerate:
		return "moderate"
	default:
		return "complex"
	}
}

// Weight reasons attached to query terms.
const (
	ReasonIdentifier  = "identifier"
	ReasonDistinctive = "distinctive"
	ReasonFiller      = "filler"
)

// WeightedTerm is a query token annotated with an importance score and the
// reason it was chosen.
type WeightedTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
	Reason string  `json:"reason"`
}

// Query holds the request-scoped analysis of one raw query string.
type Query struct {
	Raw        string
	Normalized string
	Terms      []WeightedTerm
	Tier       Tier
}

// Candidate is an ephemeral match produced by one strategy.
type Candidate struct {
	NaturalKey    string
	ContextType   models.ContextType
	FormattedText string
	MatchedTerms  int
	BestColumn    int
	AccessCount   int64
	Score         float64
}

// Options control a single Resolve call.
type Options struct {
	// IncludeEverything attaches related cached answers to the result.
	IncludeEverything bool
	// StrategyHint skips ahead to the named strategy. Tier gating still
	// applies.
	StrategyHint models.Strategy
}

// Alternative is a lower-ranked candidate attached to a resolved result.
type Alternative struct {
	NaturalKey    string             `json:"natural_key"`
	ContextType   models.ContextType `json:"context_type"`
	FormattedText string             `json:"formatted_text"`
	Score         float64            `json:"score"`
}

// Result is the outcome of one resolution call: either a resolved answer or
// a not-found diagnostic bundle.
type Result struct {
	Found         bool                       `json:"found"`
	FormattedText string                     `json:"formatted_text,omitempty"`
	ContextType   models.ContextType         `json:"context_type,omitempty"`
	NaturalKey    string                     `json:"natural_key,omitempty"`
	Strategy      models.Strategy            `json:"strategy,omitempty"`
	MatchedTerms  []string                   `json:"matched_terms,omitempty"`
	Alternatives  []Alternative              `json:"alternatives,omitempty"`
	Related       []models.PrecomputedAnswer `json:"related,omitempty"`
	Diagnostics   *Diagnostics               `json:"diagnostics,omitempty"`
}

// Store is the read-mostly datastore surface the resolver depends on.
// Lookup methods return (nil, nil) when no row matches; errors are reserved
// for transport and datastore failures.
type Store interface {
	AnswerByNaturalKey(ctx context.Context, key string) (*models.PrecomputedAnswer, error)
	RelatedAnswers(ctx context.Context, answer *models.PrecomputedAnswer) ([]models.PrecomputedAnswer, error)
	TouchAnswer(ctx context.Context, key string, contextType models.ContextType) error
	TripBySlug(ctx context.Context, slug string) (*models.Trip, error)
	TripByID(ctx context.Context, id int64) (*models.Trip, error)
	ClientByID(ctx context.Context, id int64) (*models.Client, error)
	SearchAnswers(ctx context.Context, clause *Clause, limit int) ([]Candidate, error)
	PartialSearch(ctx context.Context, needle string, limit int) ([]Candidate, error)
	WordSearch(ctx context.Context, term string, limit int) ([]Candidate, error)
	RecentTrips(ctx context.Context, limit int) ([]models.Trip, error)
	RecentClients(ctx context.Context, limit int) ([]models.Client, error)
}

// ComponentMatch is one hit from the semantic component-matching capability.
type ComponentMatch struct {
	TripID     int64
	NaturalKey string
	Score      float64
	Components []string
}

// ComponentMatcher scores a query against precomputed record components
// (name fragments, places, date fragments). It is treated as a black box
// and consulted only after all syntactic strategies fail.
type ComponentMatcher interface {
	MatchComponents(ctx context.Context, query string, limit int) ([]ComponentMatch, error)
}
