package jobs

import (
	"context"
	"log"
	"time"

	"tripsearch/internal/db"
)

// AnswerJanitor periodically retires stale duplicate rows from the
// precomputed answer cache. Refreshes are supposed to retire their own
// stale rows, but external writers have historically accumulated
// duplicates; the janitor keeps the at-most-one-current-row invariant
// holding either way.
type AnswerJanitor struct {
	db       *db.DB
	interval time.Duration
}

// NewAnswerJanitor creates a new janitor.
func NewAnswerJanitor(database *db.DB, interval time.Duration) *AnswerJanitor {
	return &AnswerJanitor{db: database, interval: interval}
}

// Start begins the background sweep loop.
func (j *AnswerJanitor) Start(ctx context.Context) {
	log.Printf("Answer janitor started (interval: %v)", j.interval)

	// Run immediately on start
	j.sweep(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Answer janitor stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *AnswerJanitor) sweep(ctx context.Context) {
	retired, err := j.db.RetireStaleAnswers(ctx)
	if err != nil {
		log.Printf("Answer janitor sweep failed: %v", err)
		return
	}
	if retired > 0 {
		log.Printf("Answer janitor retired %d stale answer rows", retired)
	}
}
