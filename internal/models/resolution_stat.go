package models

import "time"

// Resolution outcome constants
const (
	OutcomeResolved = "resolved"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// ResolutionStat represents a per-query hit count by strategy and outcome.
type ResolutionStat struct {
	QueryNorm  string
	Strategy   string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
