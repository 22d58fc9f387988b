package db

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tripsearch/internal/models"
	"tripsearch/internal/search"
)

// escapeLike escapes LIKE wildcards so terms match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// escapeRegex escapes POSIX regex metacharacters for word-boundary matching.
func escapeRegex(s string) string {
	return regexp.QuoteMeta(s)
}

// SearchAnswers applies a weighted clause to the answer cache. Ranking:
// terms matched, then best matching column (natural key first), then
// previously-popular answers.
func (d *DB) SearchAnswers(ctx context.Context, clause *search.Clause, limit int) ([]search.Candidate, error) {
	query := fmt.Sprintf(`
		SELECT natural_key, context_type, formatted_text, access_count,
			%s AS matched_terms,
			%s AS best_column
		FROM precomputed_answers
		WHERE %s
		ORDER BY matched_terms DESC, best_column ASC, access_count DESC
		LIMIT %d
	`, clause.RankExpr, clause.ColumnExpr, clause.Predicate, limit)

	rows, err := d.Pool.Query(ctx, query, clause.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []search.Candidate
	for rows.Next() {
		var c search.Candidate
		if err := rows.Scan(&c.NaturalKey, &c.ContextType, &c.FormattedText, &c.AccessCount, &c.MatchedTerms, &c.BestColumn); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// PartialSearch is a containment scan over the denormalized search text of
// trips and clients. Trips rank ahead of clients at equal match, newest
// first within a kind.
func (d *DB) PartialSearch(ctx context.Context, needle string, limit int) ([]search.Candidate, error) {
	pattern := "%" + escapeLike(needle) + "%"

	query := `
		SELECT natural_key, context_type, formatted_text FROM (
			SELECT name AS natural_key, 'trip'::text AS context_type,
				name AS formatted_text, 1 AS priority, updated_at
			FROM trips
			WHERE search_text LIKE $1
			UNION ALL
			SELECT email, 'client'::text, full_name, 2 AS priority, updated_at
			FROM clients
			WHERE search_text LIKE $1
		) combined
		ORDER BY priority ASC, updated_at DESC
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []search.Candidate
	for rows.Next() {
		var c search.Candidate
		if err := rows.Scan(&c.NaturalKey, &c.ContextType, &c.FormattedText); err != nil {
			return nil, err
		}
		c.MatchedTerms = 1
		c.BestColumn = 3
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// search_text blobs carry no presentation; swap in a proper summary.
	for i := range candidates {
		if err := d.fillSummary(ctx, &candidates[i]); err != nil {
			return nil, err
		}
	}
	return candidates, nil
}

// fillSummary replaces a candidate's placeholder text with the record's
// formatted summary, preferring its cached answer when one exists.
func (d *DB) fillSummary(ctx context.Context, c *search.Candidate) error {
	answer, err := d.AnswerByNaturalKey(ctx, c.NaturalKey)
	if err != nil {
		return err
	}
	if answer != nil && answer.ContextType == c.ContextType {
		c.FormattedText = answer.FormattedText
		c.AccessCount = answer.AccessCount
		return nil
	}

	switch c.ContextType {
	case models.ContextTrip:
		row := d.Pool.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE name = $1`, c.NaturalKey)
		trip, err := scanTrip(row)
		if err != nil {
			return err
		}
		if trip != nil {
			c.FormattedText = trip.Summary()
		}
	case models.ContextClient:
		client, err := d.ClientByEmail(ctx, c.NaturalKey)
		if err != nil {
			return err
		}
		if client != nil {
			c.FormattedText = client.Summary()
		}
	}
	return nil
}

// WordSearch matches a single term on word boundaries against answer keys
// and the keyword index. The regex is one term wide, so it stays well under
// the datastore's pattern limits; anything wider goes through SearchAnswers.
func (d *DB) WordSearch(ctx context.Context, term string, limit int) ([]search.Candidate, error) {
	pattern := `\m` + escapeRegex(term) + `\M`

	query := `
		SELECT natural_key, context_type, formatted_text, access_count,
			CASE WHEN natural_key ~* $1 THEN 1 ELSE 2 END AS best_column
		FROM precomputed_answers
		WHERE natural_key ~* $1 OR keywords ~* $1
		ORDER BY best_column ASC, access_count DESC
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, query, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []search.Candidate
	for rows.Next() {
		var c search.Candidate
		if err := rows.Scan(&c.NaturalKey, &c.ContextType, &c.FormattedText, &c.AccessCount, &c.BestColumn); err != nil {
			return nil, err
		}
		c.MatchedTerms = 1
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
