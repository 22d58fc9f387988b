package jobs

import (
	"context"
	"testing"
	"time"

	"tripsearch/internal/models"
	"tripsearch/internal/testutil"
)

func TestAnswerJanitorSweepsDuplicates(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	testutil.CreateTestAnswer(t, database, "Bath Spa Weekend", string(models.ContextTrip), "stale", "")
	testutil.CreateTestAnswer(t, database, "Bath Spa Weekend", string(models.ContextTrip), "current", "")

	janitorCtx, cancel := context.WithCancel(ctx)
	janitor := NewAnswerJanitor(database, time.Hour)
	done := make(chan struct{})
	go func() {
		janitor.Start(janitorCtx)
		close(done)
	}()

	// The janitor sweeps immediately on start; poll until the duplicate is
	// gone rather than sleeping a fixed amount.
	deadline := time.Now().Add(5 * time.Second)
	for {
		var n int
		err := database.Pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM precomputed_answers WHERE natural_key = $1", "Bath Spa Weekend",
		).Scan(&n)
		if err != nil {
			t.Fatalf("count query failed: %v", err)
		}
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("duplicate rows still present after sweep window: %d", n)
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("janitor did not stop on context cancellation")
	}
}
