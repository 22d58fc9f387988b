package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tripsearch/internal/models"
)

// tripColumns is the standard column list for trip queries.
const tripColumns = `id, name, slug, status, start_date, end_date,
	destinations, total_cost, search_text, created_at, updated_at`

// scanTrip scans a row into a Trip struct. A missing row comes back as
// (nil, nil) so the resolver treats it as zero candidates.
func scanTrip(row pgx.Row) (*models.Trip, error) {
	var trip models.Trip
	err := row.Scan(
		&trip.ID,
		&trip.Name,
		&trip.Slug,
		&trip.Status,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Destinations,
		&trip.TotalCost,
		&trip.SearchText,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// TripBySlug retrieves a trip by its exact slug.
func (d *DB) TripBySlug(ctx context.Context, slug string) (*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE slug = $1`
	return scanTrip(d.Pool.QueryRow(ctx, query, slug))
}

// TripByID retrieves a trip by primary key.
func (d *DB) TripByID(ctx context.Context, id int64) (*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return scanTrip(d.Pool.QueryRow(ctx, query, id))
}

// RecentTrips retrieves the most recently modified trips for diagnostics
// suggestions.
func (d *DB) RecentTrips(ctx context.Context, limit int) ([]models.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		ORDER BY updated_at DESC
		LIMIT $1
	`
	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.Name,
			&trip.Slug,
			&trip.Status,
			&trip.StartDate,
			&trip.EndDate,
			&trip.Destinations,
			&trip.TotalCost,
			&trip.SearchText,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}
