package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"tripsearch/internal/models"
)

// Resolver is the canonical progressive-fallback search resolver. Every
// entry point (JSON API, HTML surface) goes through Resolve; there is
// deliberately no second copy of the fallback chain anywhere.
//
// Strategies run sequentially, cheapest and most precise first, and the
// first non-empty result short-circuits the rest. Recoverable failures
// (timeouts, pattern rejections) advance the chain instead of surfacing.
type Resolver struct {
	store      Store
	matcher    ComponentMatcher
	cfg        Config
	optimizer  *Optimizer
	classifier *Classifier
	logger     *slog.Logger
}

// NewResolver builds a resolver. matcher may be nil, which disables the
// semantic fallback. logger defaults to slog.Default().
func NewResolver(store Store, matcher ComponentMatcher, cfg Config, logger *slog.Logger) *Resolver {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:      store,
		matcher:    matcher,
		cfg:        cfg,
		optimizer:  NewOptimizer(cfg),
		classifier: NewClassifier(cfg),
		logger:     logger,
	}
}

// strategyStep is one entry in the fallback chain.
type strategyStep struct {
	name models.Strategy
	run  func(ctx context.Context, q *Query) ([]Candidate, error)
}

// Resolve answers a free-text lookup. It returns ErrInvalidQuery for empty
// input, a Result with Found=false plus diagnostics when every strategy is
// exhausted, and ErrResolutionFailed for unexpected datastore errors (the
// details are logged under a generated session id, never returned).
func (r *Resolver) Resolve(ctx context.Context, rawQuery string, opts Options) (*Result, error) {
	if strings.TrimSpace(rawQuery) == "" {
		return nil, ErrInvalidQuery
	}

	normalized, terms := r.optimizer.Optimize(rawQuery)
	q := &Query{
		Raw:        strings.TrimSpace(rawQuery),
		Normalized: normalized,
		Terms:      terms,
		Tier:       r.classifier.Classify(normalized),
	}

	sessionID := uuid.NewString()
	log := r.logger.With("session_id", sessionID, "query", q.Normalized, "tier", q.Tier.String())

	// Nothing distinctive survived the optimizer and the query has no
	// identifier shape: every fuzzy strategy would scan on noise, so skip
	// straight to diagnostics. Shape-only queries like "client 17" still
	// run the detectors.
	_, hasSlugShape := DetectSlug(q.Raw)
	_, _, hasIDShape := DetectNumericID(q.Raw)
	if len(q.Terms) == 0 && !hasSlugShape && !hasIDShape {
		return &Result{
			Found: false,
			Diagnostics: r.composeDiagnostics(ctx, q, nil,
				"the query contains only generic words; add distinctive terms such as a name, email, or destination"),
		}, nil
	}

	chain := []strategyStep{
		{models.StrategyExactMatch, r.runDirectKey},
		{models.StrategySlugDirect, r.runSlugDetector},
		{models.StrategyIDDirect, r.runNumericDetector},
		{models.StrategyWeightedClause, r.runWeightedClause},
		{models.StrategyPartialLike, r.runPartialLike},
		{models.StrategySingleWord, r.runSingleWord},
		{models.StrategySemantic, r.runSemantic},
	}

	start := 0
	if opts.StrategyHint.Valid() {
		for i, s := range chain {
			if s.name == opts.StrategyHint {
				start = i
				break
			}
		}
	}

	var tried []models.Strategy
	for _, step := range chain[start:] {
		if step.name == models.StrategySemantic && r.matcher == nil {
			continue
		}
		tried = append(tried, step.name)

		candidates, err := step.run(ctx, q)
		if err != nil {
			if errors.Is(err, errSlugShapeMiss) {
				log.Info("slug shape confirmed but no record, ending chain")
				break
			}
			if recoverable(err) {
				log.Warn("strategy failed, advancing", "strategy", step.name, "reason", err)
				continue
			}
			log.Error("unexpected resolution failure", "strategy", step.name, "error", err)
			return nil, ErrResolutionFailed
		}
		if len(candidates) == 0 {
			continue
		}
		return r.buildResult(ctx, q, step.name, candidates, opts, log), nil
	}

	return &Result{
		Found: false,
		Diagnostics: r.composeDiagnostics(ctx, q, tried,
			"no matching trip or client; try more distinctive terms such as a name, email, or destination"),
	}, nil
}

// runDirectKey is the exact case-insensitive lookup of the original query
// against the answer cache's natural keys.
func (r *Resolver) runDirectKey(ctx context.Context, q *Query) ([]Candidate, error) {
	var answer *models.PrecomputedAnswer
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		answer, err = r.store.AnswerByNaturalKey(gctx, q.Raw)
		return err
	})
	if err != nil || answer == nil {
		return nil, err
	}
	return []Candidate{answerCandidate(answer, 1, 1)}, nil
}

// runSlugDetector resolves queries shaped like a trip slug with one exact
// equality lookup. A shape match is all-or-nothing: when the lookup comes
// back empty the chain ends with errSlugShapeMiss rather than letting fuzzy
// scans reinterpret a query the detector already claimed.
func (r *Resolver) runSlugDetector(ctx context.Context, q *Query) ([]Candidate, error) {
	slug, ok := DetectSlug(q.Raw)
	if !ok {
		return nil, nil
	}
	var trip *models.Trip
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		trip, err = r.store.TripBySlug(gctx, slug)
		return err
	})
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, errSlugShapeMiss
	}
	return []Candidate{r.tripCandidate(ctx, trip)}, nil
}

// runNumericDetector resolves bare-integer identifier queries with one
// primary-key lookup on the qualified entity.
func (r *Resolver) runNumericDetector(ctx context.Context, q *Query) ([]Candidate, error) {
	id, contextType, ok := DetectNumericID(q.Raw)
	if !ok {
		return nil, nil
	}

	if contextType == models.ContextClient {
		var client *models.Client
		err := r.guard(ctx, func(gctx context.Context) error {
			var err error
			client, err = r.store.ClientByID(gctx, id)
			return err
		})
		if err != nil || client == nil {
			return nil, err
		}
		return []Candidate{{
			NaturalKey:    client.Email,
			ContextType:   models.ContextClient,
			FormattedText: client.Summary(),
			MatchedTerms:  1,
			BestColumn:    1,
		}}, nil
	}

	var trip *models.Trip
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		trip, err = r.store.TripByID(gctx, id)
		return err
	})
	if err != nil || trip == nil {
		return nil, err
	}
	return []Candidate{r.tripCandidate(ctx, trip)}, nil
}

// runWeightedClause applies the ranked multi-term predicate to the answer
// cache. The builder itself enforces the complex-tier single-term reduction.
func (r *Resolver) runWeightedClause(ctx context.Context, q *Query) ([]Candidate, error) {
	clause, err := BuildClause(q.Terms, q.Tier, r.cfg)
	if err != nil {
		if recoverable(err) {
			return nil, err
		}
		return nil, nil
	}

	var candidates []Candidate
	err = r.guard(ctx, func(gctx context.Context) error {
		var err error
		candidates, err = r.store.SearchAnswers(gctx, clause, r.cfg.CandidateLimit)
		return err
	})
	return candidates, err
}

// runPartialLike is a containment scan over the denormalized search text of
// trips and clients. Complex-tier queries use only the top term instead of
// the full normalized string.
func (r *Resolver) runPartialLike(ctx context.Context, q *Query) ([]Candidate, error) {
	needle := q.Normalized
	if q.Tier == TierComplex && len(q.Terms) > 0 {
		needle = q.Terms[0].Term
	}

	var candidates []Candidate
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		candidates, err = r.store.PartialSearch(gctx, needle, r.cfg.CandidateLimit)
		return err
	})
	return candidates, err
}

// runSingleWord matches the single highest-weighted term on word boundaries
// against answer keys and keywords.
func (r *Resolver) runSingleWord(ctx context.Context, q *Query) ([]Candidate, error) {
	if len(q.Terms) == 0 {
		return nil, nil
	}
	var candidates []Candidate
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		candidates, err = r.store.WordSearch(gctx, q.Terms[0].Term, r.cfg.CandidateLimit)
		return err
	})
	return candidates, err
}

// runSemantic is the last-resort component match. Scores come back 0-1 from
// the matcher; the matched components double as the matched-terms report.
func (r *Resolver) runSemantic(ctx context.Context, q *Query) ([]Candidate, error) {
	var matches []ComponentMatch
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		matches, err = r.matcher.MatchComponents(gctx, q.Raw, r.cfg.CandidateLimit)
		return err
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		text := "Trip " + m.NaturalKey
		if len(m.Components) > 0 {
			text += " (matched: " + strings.Join(m.Components, ", ") + ")"
		}
		candidates = append(candidates, Candidate{
			NaturalKey:    m.NaturalKey,
			ContextType:   models.ContextTrip,
			FormattedText: text,
			MatchedTerms:  len(m.Components),
			BestColumn:    1,
			Score:         m.Score,
		})
	}
	return candidates, nil
}

// tripCandidate builds a candidate for a trip row, preferring its cached
// answer text when one exists. The enrichment lookup is best-effort.
func (r *Resolver) tripCandidate(ctx context.Context, trip *models.Trip) Candidate {
	c := Candidate{
		NaturalKey:    trip.Name,
		ContextType:   models.ContextTrip,
		FormattedText: trip.Summary(),
		MatchedTerms:  1,
		BestColumn:    1,
	}
	var answer *models.PrecomputedAnswer
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		answer, err = r.store.AnswerByNaturalKey(gctx, trip.Name)
		return err
	})
	if err == nil && answer != nil {
		c.FormattedText = answer.FormattedText
		c.AccessCount = answer.AccessCount
	}
	return c
}

// buildResult picks the top candidate as primary, attaches the next few as
// alternatives, bumps access metadata, and optionally joins related cached
// answers.
func (r *Resolver) buildResult(ctx context.Context, q *Query, strategy models.Strategy, candidates []Candidate, opts Options, log *slog.Logger) *Result {
	primary := candidates[0]

	result := &Result{
		Found:         true,
		FormattedText: primary.FormattedText,
		ContextType:   primary.ContextType,
		NaturalKey:    primary.NaturalKey,
		Strategy:      strategy,
		MatchedTerms:  matchedTermsFor(q, strategy, primary),
	}

	limit := r.cfg.MaxAlternatives
	for _, c := range candidates[1:] {
		if len(result.Alternatives) >= limit {
			break
		}
		result.Alternatives = append(result.Alternatives, Alternative{
			NaturalKey:    c.NaturalKey,
			ContextType:   c.ContextType,
			FormattedText: c.FormattedText,
			Score:         c.Score,
		})
	}

	// Best-effort access bump; lost updates under concurrent hits are an
	// accepted tolerance.
	go func() {
		if err := r.store.TouchAnswer(context.Background(), primary.NaturalKey, primary.ContextType); err != nil {
			log.Debug("access bump failed", "natural_key", primary.NaturalKey, "error", err)
		}
	}()

	if opts.IncludeEverything {
		r.attachRelated(ctx, result, log)
	}
	return result
}

// attachRelated joins cached answers referenced by the primary answer's
// payload (e.g. client profiles attached to a trip answer).
func (r *Resolver) attachRelated(ctx context.Context, result *Result, log *slog.Logger) {
	var answer *models.PrecomputedAnswer
	err := r.guard(ctx, func(gctx context.Context) error {
		var err error
		answer, err = r.store.AnswerByNaturalKey(gctx, result.NaturalKey)
		return err
	})
	if err != nil || answer == nil {
		return
	}

	var related []models.PrecomputedAnswer
	err = r.guard(ctx, func(gctx context.Context) error {
		var err error
		related, err = r.store.RelatedAnswers(gctx, answer)
		return err
	})
	if err != nil {
		log.Warn("related answer enrichment failed", "error", err)
		return
	}
	result.Related = related
}

// matchedTermsFor reports which terms produced the hit, per strategy.
func matchedTermsFor(q *Query, strategy models.Strategy, primary Candidate) []string {
	switch strategy {
	case models.StrategyWeightedClause:
		kept := q.Terms
		if q.Tier == TierComplex {
			kept = kept[:1] // mirror the clause builder's safety reduction
		}
		terms := make([]string, 0, len(kept))
		for _, t := range kept {
			terms = append(terms, t.Term)
		}
		return terms
	case models.StrategyPartialLike:
		if q.Tier == TierComplex && len(q.Terms) > 0 {
			return []string{q.Terms[0].Term}
		}
		return []string{q.Normalized}
	case models.StrategySingleWord:
		if len(q.Terms) > 0 {
			return []string{q.Terms[0].Term}
		}
	case models.StrategySemantic, models.StrategyExactMatch, models.StrategySlugDirect, models.StrategyIDDirect:
		return []string{primary.NaturalKey}
	}
	return nil
}

// answerCandidate maps a cached answer row to a candidate.
func answerCandidate(a *models.PrecomputedAnswer, matched, bestColumn int) Candidate {
	return Candidate{
		NaturalKey:    a.NaturalKey,
		ContextType:   a.ContextType,
		FormattedText: a.FormattedText,
		MatchedTerms:  matched,
		BestColumn:    bestColumn,
		AccessCount:   a.AccessCount,
	}
}
