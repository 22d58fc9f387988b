package search

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildClause(t *testing.T) {
	terms := []WeightedTerm{
		{Term: "sara@example.com", Weight: 3, Reason: ReasonIdentifier},
		{Term: "bristol", Weight: 2, Reason: ReasonDistinctive},
		{Term: "winter", Weight: 2, Reason: ReasonDistinctive},
	}

	c, err := BuildClause(terms, TierModerate, Config{})
	if err != nil {
		t.Fatalf("BuildClause() error = %v", err)
	}

	if len(c.Args) != 3 {
		t.Fatalf("len(Args) = %d, want 3", len(c.Args))
	}
	if c.Args[0] != "%sara@example.com%" {
		t.Errorf("Args[0] = %q, want wrapped pattern", c.Args[0])
	}
	for _, col := range []string{"natural_key", "keywords", "formatted_text"} {
		if !strings.Contains(c.Predicate, col) {
			t.Errorf("predicate missing column %s: %s", col, c.Predicate)
		}
	}
	if !strings.Contains(c.RankExpr, "CASE WHEN") {
		t.Errorf("rank expression missing match counting: %s", c.RankExpr)
	}
}

func TestBuildClause_ComplexTierReduction(t *testing.T) {
	terms := []WeightedTerm{
		{Term: "chamonix", Weight: 2},
		{Term: "bristol", Weight: 2},
		{Term: "winter", Weight: 2},
	}

	c, err := BuildClause(terms, TierComplex, Config{})
	if err != nil {
		t.Fatalf("BuildClause() error = %v", err)
	}

	if len(c.Args) != 1 {
		t.Errorf("complex tier kept %d terms, want 1", len(c.Args))
	}
	if strings.Contains(c.Predicate, "keywords") || strings.Contains(c.Predicate, "formatted_text") {
		t.Errorf("complex tier predicate touches secondary columns: %s", c.Predicate)
	}
	if !strings.Contains(c.Predicate, "natural_key") {
		t.Errorf("complex tier predicate missing natural_key: %s", c.Predicate)
	}
}

func TestBuildClause_TermCap(t *testing.T) {
	terms := []WeightedTerm{
		{Term: "alpha", Weight: 3},
		{Term: "bravo", Weight: 2},
		{Term: "charlie", Weight: 2},
		{Term: "delta", Weight: 1},
	}

	c, err := BuildClause(terms, TierSimple, Config{})
	if err != nil {
		t.Fatalf("BuildClause() error = %v", err)
	}
	if len(c.Args) != 3 {
		t.Errorf("len(Args) = %d, want term cap of 3", len(c.Args))
	}
}

func TestBuildClause_PatternLengthTrimsTrailing(t *testing.T) {
	long := strings.Repeat("x", 30)
	terms := []WeightedTerm{
		{Term: long, Weight: 2},
		{Term: "bristol", Weight: 2},
	}

	c, err := BuildClause(terms, TierSimple, Config{MaxPatternLength: 34})
	if err != nil {
		t.Fatalf("BuildClause() error = %v", err)
	}
	if len(c.Terms) != 1 || c.Terms[0] != long {
		t.Errorf("Terms = %v, want only the leading term kept", c.Terms)
	}
}

func TestBuildClause_RejectsOversizedFirstTerm(t *testing.T) {
	terms := []WeightedTerm{{Term: strings.Repeat("x", 50), Weight: 2}}

	_, err := BuildClause(terms, TierSimple, Config{MaxPatternLength: 20})
	if !errors.Is(err, ErrPatternRejected) {
		t.Errorf("BuildClause() error = %v, want ErrPatternRejected", err)
	}
}

func TestBuildClause_NoTerms(t *testing.T) {
	_, err := BuildClause(nil, TierSimple, Config{})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("BuildClause() error = %v, want ErrInvalidQuery", err)
	}
}

func TestEscapeLike(t *testing.T) {
	c, err := BuildClause([]WeightedTerm{{Term: "100%_done", Weight: 1}}, TierSimple, Config{})
	if err != nil {
		t.Fatalf("BuildClause() error = %v", err)
	}
	if c.Args[0] != `%100\%\_done%` {
		t.Errorf("Args[0] = %q, want LIKE metacharacters escaped", c.Args[0])
	}
}
