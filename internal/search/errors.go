package search

import "errors"

var (
	// ErrInvalidQuery is returned for empty or unusable query strings.
	// No datastore calls are made.
	ErrInvalidQuery = errors.New("query must not be empty")

	// ErrQueryTimeout marks a datastore call that exceeded its time budget.
	// Strategy-local and recoverable; the orchestrator advances.
	ErrQueryTimeout = errors.New("datastore call exceeded time budget")

	// ErrPatternRejected marks a predicate the datastore refused as too
	// complex. Recoverable; the orchestrator advances to a simpler strategy
	// and never retries the same predicate.
	ErrPatternRejected = errors.New("datastore rejected pattern as too complex")

	// ErrResolutionFailed is the user-safe error for unexpected datastore or
	// transport failures. Details are logged with a session identifier,
	// never surfaced.
	ErrResolutionFailed = errors.New("search is temporarily unavailable")
)

// errSlugShapeMiss signals that the slug detector confirmed the query's
// shape but the exact lookup found nothing. A confirmed slug is
// authoritative: fuzzy scans never see slug-shaped queries, so the
// orchestrator stops the chain and composes diagnostics.
var errSlugShapeMiss = errors.New("slug shape matched but no such record")

// recoverable reports whether a strategy failure should be absorbed by the
// orchestrator rather than surfaced.
func recoverable(err error) bool {
	return errors.Is(err, ErrQueryTimeout) || errors.Is(err, ErrPatternRejected)
}
