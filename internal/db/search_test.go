package db

import (
	"context"
	"testing"
	"time"

	"tripsearch/internal/models"
	"tripsearch/internal/search"
)

func insertTrip(t *testing.T, db *DB, name, slug, destinations, searchText string) int64 {
	t.Helper()
	var id int64
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO trips (name, slug, status, destinations, search_text)
		VALUES ($1, $2, 'booked', $3, $4)
		RETURNING id
	`, name, slug, destinations, searchText).Scan(&id)
	if err != nil {
		t.Fatalf("failed to insert trip: %v", err)
	}
	return id
}

func insertClient(t *testing.T, db *DB, fullName, email, searchText string) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO clients (full_name, email, home_city, search_text)
		VALUES ($1, $2, '', $3)
	`, fullName, email, searchText)
	if err != nil {
		t.Fatalf("failed to insert client: %v", err)
	}
}

func insertSurface(t *testing.T, db *DB, tripID int64, nameTokens, placeTokens, dateTokens string) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO trip_search_surface (trip_id, name_tokens, place_tokens, date_tokens)
		VALUES ($1, $2, $3, $4)
	`, tripID, nameTokens, placeTokens, dateTokens)
	if err != nil {
		t.Fatalf("failed to insert search surface: %v", err)
	}
}

func TestSearchAnswers(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	stageAnswer(t, db, "Sara and Darren Honeymoon", models.ContextTrip, "Honeymoon in Bristol and Bath", now)
	stageAnswer(t, db, "Chamonix Ski Week", models.ContextTrip, "Ski week for the Whitfields", now)

	// "darren" hits only the honeymoon's natural key; "bristol" hits only
	// its formatted text.
	clause, err := search.BuildClause([]search.WeightedTerm{
		{Term: "darren", Weight: 2},
		{Term: "bristol", Weight: 2},
	}, search.TierSimple, search.Config{})
	if err != nil {
		t.Fatalf("BuildClause() error = %v", err)
	}

	candidates, err := db.SearchAnswers(ctx, clause, 10)
	if err != nil {
		t.Fatalf("SearchAnswers() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(candidates))
	}
	got := candidates[0]
	if got.NaturalKey != "Sara and Darren Honeymoon" {
		t.Errorf("NaturalKey = %q", got.NaturalKey)
	}
	if got.MatchedTerms != 2 {
		t.Errorf("MatchedTerms = %d, want 2", got.MatchedTerms)
	}
	if got.BestColumn != 1 {
		t.Errorf("BestColumn = %d, want 1 (natural key)", got.BestColumn)
	}
}

func TestSearchAnswers_RanksByTermsMatched(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	stageAnswer(t, db, "Bristol Walking Tour", models.ContextTrip, "A walking tour", now)
	stageAnswer(t, db, "Sara and Darren Honeymoon", models.ContextTrip, "Bristol honeymoon", now)

	clause, err := search.BuildClause([]search.WeightedTerm{
		{Term: "darren", Weight: 2},
		{Term: "bristol", Weight: 2},
	}, search.TierSimple, search.Config{})
	if err != nil {
		t.Fatalf("BuildClause() error = %v", err)
	}

	candidates, err := db.SearchAnswers(ctx, clause, 10)
	if err != nil {
		t.Fatalf("SearchAnswers() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
	if candidates[0].NaturalKey != "Sara and Darren Honeymoon" {
		t.Errorf("top candidate = %q, want the two-term match first", candidates[0].NaturalKey)
	}
}

func TestPartialSearch_TripsRankAheadOfClients(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertClient(t, db, "Bristol Property Co", "bookings@bristolprop.example", "bristol property co bookings")
	insertTrip(t, db, "Bristol Walking Tour", "bristol-walking-tour-2026", "Bristol", "bristol walking tour 2026")

	candidates, err := db.PartialSearch(ctx, "bristol", 10)
	if err != nil {
		t.Fatalf("PartialSearch() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
	if candidates[0].ContextType != models.ContextTrip {
		t.Errorf("top candidate context = %q, want trip before client", candidates[0].ContextType)
	}
	if candidates[1].NaturalKey != "bookings@bristolprop.example" {
		t.Errorf("second candidate = %q", candidates[1].NaturalKey)
	}
}

func TestPartialSearch_PrefersCachedAnswerText(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertTrip(t, db, "Bristol Walking Tour", "bristol-walking-tour-2026", "Bristol", "bristol walking tour 2026")
	stageAnswer(t, db, "Bristol Walking Tour", models.ContextTrip, "Bristol Walking Tour: 4 guests, May 2026", time.Now())

	candidates, err := db.PartialSearch(ctx, "walking", 10)
	if err != nil {
		t.Fatalf("PartialSearch() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(candidates))
	}
	if candidates[0].FormattedText != "Bristol Walking Tour: 4 guests, May 2026" {
		t.Errorf("FormattedText = %q, want the cached answer text", candidates[0].FormattedText)
	}
}

func TestWordSearch_MatchesWholeWordsOnly(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now()
	stageAnswer(t, db, "Sara and Darren Honeymoon", models.ContextTrip, "details", now)
	stageAnswer(t, db, "Sarasota Beach Escape", models.ContextTrip, "details", now)

	candidates, err := db.WordSearch(ctx, "sara", 10)
	if err != nil {
		t.Fatalf("WordSearch() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("len(candidates) = %d, want 1 (no substring hit on Sarasota)", len(candidates))
	}
	if candidates[0].NaturalKey != "Sara and Darren Honeymoon" {
		t.Errorf("NaturalKey = %q", candidates[0].NaturalKey)
	}
}

func TestMatchComponents(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	honeymoonID := insertTrip(t, db, "Sara and Darren Honeymoon", "sara-darren-honeymoon-2026", "Bristol", "")
	skiID := insertTrip(t, db, "Chamonix Ski Week", "chamonix-ski-week-2026", "Chamonix", "")
	insertSurface(t, db, honeymoonID, "sara darren honeymoon", "bristol bath england", "june 2026 summer")
	insertSurface(t, db, skiID, "chamonix ski week whitfield", "chamonix france alps", "january 2026 winter")

	matches, err := db.MatchComponents(ctx, "sara bristol june", 10)
	if err != nil {
		t.Fatalf("MatchComponents() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	m := matches[0]
	if m.NaturalKey != "Sara and Darren Honeymoon" {
		t.Errorf("NaturalKey = %q", m.NaturalKey)
	}
	if m.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0 for hits on all three component groups", m.Score)
	}
	if len(m.Components) != 3 {
		t.Errorf("Components = %v, want name, place, and date", m.Components)
	}
}

func TestMatchComponents_OrdersByScore(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	honeymoonID := insertTrip(t, db, "Sara and Darren Honeymoon", "sara-darren-honeymoon-2026", "Bristol", "")
	walkID := insertTrip(t, db, "Bristol Walking Tour", "bristol-walking-tour-2026", "Bristol", "")
	insertSurface(t, db, honeymoonID, "sara darren honeymoon", "bristol bath england", "june 2026 summer")
	insertSurface(t, db, walkID, "walking tour", "bristol england", "may 2026 spring")

	matches, err := db.MatchComponents(ctx, "sara bristol", 10)
	if err != nil {
		t.Fatalf("MatchComponents() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].NaturalKey != "Sara and Darren Honeymoon" {
		t.Errorf("top match = %q, want the higher-scoring trip first", matches[0].NaturalKey)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("scores not descending: %v then %v", matches[0].Score, matches[1].Score)
	}
}

func TestIncrementResolution(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := db.IncrementResolution(ctx, "sara darren", "weighted_clause", "resolved"); err != nil {
			t.Fatalf("IncrementResolution() error = %v", err)
		}
	}
	if err := db.IncrementResolution(ctx, "sara darren", "weighted_clause", "not_found"); err != nil {
		t.Fatalf("IncrementResolution() error = %v", err)
	}

	stats, err := db.AllResolutionStats(ctx)
	if err != nil {
		t.Fatalf("AllResolutionStats() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
	for _, s := range stats {
		switch s.Outcome {
		case "resolved":
			if s.Count != 3 {
				t.Errorf("resolved count = %d, want 3", s.Count)
			}
		case "not_found":
			if s.Count != 1 {
				t.Errorf("not_found count = %d, want 1", s.Count)
			}
		default:
			t.Errorf("unexpected outcome %q", s.Outcome)
		}
	}
}
