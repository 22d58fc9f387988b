package search

import (
	"fmt"
	"strings"
)

// Candidate text columns on the answer cache, in rank priority order:
// natural key beats the keyword index beats the full formatted text.
var answerColumns = []string{"natural_key", "keywords", "formatted_text"}

// Clause is a ranked multi-term match predicate with bound parameters,
// ready to be applied to the answer cache.
type Clause struct {
	// Predicate is a SQL boolean expression over answerColumns using
	// $1..$n placeholders.
	Predicate string
	// RankExpr counts how many terms matched.
	RankExpr string
	// ColumnExpr yields the priority of the best matching column (1 is
	// best) for tie-breaking.
	ColumnExpr string
	// Args are the bound ILIKE patterns, one per term.
	Args []any
	// Terms are the matched term texts, for reporting.
	Terms []string
}

// BuildClause builds the predicate for up to MaxClauseTerms weighted terms.
// Complex-tier queries are reduced to a single term over the natural key
// only, and total pattern length is capped, so the resulting predicate
// stays under the datastore's pattern-complexity limit.
func BuildClause(terms []WeightedTerm, tier Tier, cfg Config) (*Clause, error) {
	cfg = cfg.withDefaults()
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no terms", ErrInvalidQuery)
	}

	maxTerms := cfg.MaxClauseTerms
	columns := answerColumns
	if tier == TierComplex {
		// Safety reduction: one term, one column.
		maxTerms = 1
		columns = answerColumns[:1]
	}
	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}

	// Trim trailing terms until the combined pattern length is under the
	// cap. The first term always survives or the clause is rejected.
	budget := cfg.MaxPatternLength
	kept := terms[:0:0]
	used := 0
	for _, t := range terms {
		cost := len(t.Term) + 2 // wildcards on both edges
		if used+cost > budget {
			break
		}
		kept = append(kept, t)
		used += cost
	}
	if len(kept) == 0 {
		return nil, ErrPatternRejected
	}

	c := &Clause{
		Args:  make([]any, 0, len(kept)),
		Terms: make([]string, 0, len(kept)),
	}

	branches := make([]string, 0, len(kept))
	rankParts := make([]string, 0, len(kept))
	for i, t := range kept {
		placeholder := fmt.Sprintf("$%d", i+1)
		cols := make([]string, 0, len(columns))
		for _, col := range columns {
			cols = append(cols, fmt.Sprintf("%s ILIKE %s", col, placeholder))
		}
		branch := "(" + strings.Join(cols, " OR ") + ")"
		branches = append(branches, branch)
		rankParts = append(rankParts, fmt.Sprintf("(CASE WHEN %s THEN 1 ELSE 0 END)", branch))
		c.Args = append(c.Args, "%"+escapeLike(t.Term)+"%")
		c.Terms = append(c.Terms, t.Term)
	}

	c.Predicate = strings.Join(branches, " OR ")
	c.RankExpr = strings.Join(rankParts, " + ")
	c.ColumnExpr = buildColumnExpr(columns, len(kept))
	return c, nil
}

// buildColumnExpr ranks which column produced the match: the natural key is
// priority 1, the keyword index 2, the formatted text 3.
func buildColumnExpr(columns []string, termCount int) string {
	placeholders := make([]string, 0, termCount)
	for i := 1; i <= termCount; i++ {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i))
	}
	arr := "ARRAY[" + strings.Join(placeholders, ", ") + "]"

	var b strings.Builder
	b.WriteString("CASE")
	for i, col := range columns {
		fmt.Fprintf(&b, " WHEN %s ILIKE ANY (%s) THEN %d", col, arr, i+1)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(columns)+1)
	return b.String()
}

// escapeLike escapes LIKE wildcards in a term so they match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
