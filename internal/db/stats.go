package db

import (
	"context"

	"tripsearch/internal/models"
)

// IncrementResolution upserts a resolution count by strategy and outcome.
func (d *DB) IncrementResolution(ctx context.Context, queryNorm, strategy, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO resolution_stats (query_norm, strategy, outcome, count, last_seen_at)
		VALUES ($1, $2, $3, 1, NOW())
		ON CONFLICT (query_norm, strategy, outcome) DO UPDATE
		SET count = resolution_stats.count + 1, last_seen_at = NOW()
	`, queryNorm, strategy, outcome)
	return err
}

// AllResolutionStats returns all resolution stat rows for metrics export.
func (d *DB) AllResolutionStats(ctx context.Context) ([]models.ResolutionStat, error) {
	rows, err := d.Pool.Query(ctx, `SELECT query_norm, strategy, outcome, count, last_seen_at FROM resolution_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.ResolutionStat
	for rows.Next() {
		var s models.ResolutionStat
		if err := rows.Scan(&s.QueryNorm, &s.Strategy, &s.Outcome, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
