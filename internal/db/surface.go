package db

import (
	"context"
	"sort"
	"strings"

	"tripsearch/internal/search"
)

// MatchComponents implements the semantic component matcher over the trip
// search surface: precomputed fuzzy name, place, and date tokens refreshed
// out-of-band by an external process. Read-only here.
//
// The score is the fraction of the three component groups a query token
// matched, so 1.0 means the query hit a trip's name, place, and date
// fragments all at once.
func (d *DB) MatchComponents(ctx context.Context, query string, limit int) ([]search.ComponentMatch, error) {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(tokens) == 0 {
		return nil, nil
	}

	patterns := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		patterns = append(patterns, "%"+escapeLike(tok)+"%")
	}

	sql := `
		SELECT s.trip_id, t.name,
			s.name_tokens ILIKE ANY ($1) AS name_hit,
			s.place_tokens ILIKE ANY ($1) AS place_hit,
			s.date_tokens ILIKE ANY ($1) AS date_hit
		FROM trip_search_surface s
		JOIN trips t ON t.id = s.trip_id
		WHERE s.name_tokens ILIKE ANY ($1)
			OR s.place_tokens ILIKE ANY ($1)
			OR s.date_tokens ILIKE ANY ($1)
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, sql, patterns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []search.ComponentMatch
	for rows.Next() {
		var m search.ComponentMatch
		var nameHit, placeHit, dateHit bool
		if err := rows.Scan(&m.TripID, &m.NaturalKey, &nameHit, &placeHit, &dateHit); err != nil {
			return nil, err
		}
		hits := 0
		if nameHit {
			hits++
			m.Components = append(m.Components, "name")
		}
		if placeHit {
			hits++
			m.Components = append(m.Components, "place")
		}
		if dateHit {
			hits++
			m.Components = append(m.Components, "date")
		}
		m.Score = float64(hits) / 3.0
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}
