package db

import (
	"context"
	"fmt"
)

// SeedDevData inserts a few trips, clients, cached answers, and search
// surface rows for development. Skips records that already exist.
func (d *DB) SeedDevData(ctx context.Context) error {
	trips := []struct {
		name, slug, status, destinations, searchText string
	}{
		{"Acme Corp Retreat 2025", "acme-corp-retreat-2025", "booked", "Lisbon, Sintra", "acme corp retreat 2025 lisbon sintra booked"},
		{"Sara and Darren Honeymoon", "sara-and-darren-honeymoon-2025", "planning", "Bristol, Bath", "sara and darren honeymoon 2025 bristol bath planning"},
		{"Winter Alps Ski Week", "winter-alps-ski-week-2026", "planning", "Chamonix", "winter alps ski week 2026 chamonix planning"},
	}
	for _, t := range trips {
		_, err := d.Pool.Exec(ctx, `
			INSERT INTO trips (name, slug, status, destinations, search_text)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO NOTHING
		`, t.name, t.slug, t.status, t.destinations, t.searchText)
		if err != nil {
			return fmt.Errorf("failed to seed trip %s: %w", t.slug, err)
		}
	}

	clients := []struct {
		name, email, city, searchText string
	}{
		{"Sara Whitfield", "sara@wanderlust.example", "Bristol", "sara whitfield bristol sara@wanderlust.example"},
		{"Darren Whitfield", "darren@wanderlust.example", "Bristol", "darren whitfield bristol darren@wanderlust.example"},
	}
	for _, c := range clients {
		_, err := d.Pool.Exec(ctx, `
			INSERT INTO clients (full_name, email, home_city, search_text)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING
		`, c.name, c.email, c.city, c.searchText)
		if err != nil {
			return fmt.Errorf("failed to seed client %s: %w", c.email, err)
		}
	}

	answers := []struct {
		key, contextType, text, keywords string
	}{
		{"Acme Corp Retreat 2025", "trip", "Acme Corp Retreat 2025: booked, Lisbon and Sintra, 14 travellers.", "acme corp retreat lisbon sintra 2025"},
		{"Sara and Darren Honeymoon", "trip", "Sara and Darren Honeymoon: planning, Bristol and Bath.", "sara darren honeymoon bristol bath"},
		{"sara@wanderlust.example", "client", "Sara Whitfield <sara@wanderlust.example>, Bristol. 2 trips on file.", "sara whitfield bristol"},
	}
	for _, a := range answers {
		_, err := d.Pool.Exec(ctx, `
			INSERT INTO precomputed_answers (natural_key, context_type, formatted_text, keywords)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (
				SELECT 1 FROM precomputed_answers
				WHERE LOWER(natural_key) = LOWER($1) AND context_type = $2
			)
		`, a.key, a.contextType, a.text, a.keywords)
		if err != nil {
			return fmt.Errorf("failed to seed answer %s: %w", a.key, err)
		}
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO trip_search_surface (trip_id, name_tokens, place_tokens, date_tokens)
		SELECT id, LOWER(name), LOWER(destinations), COALESCE(TO_CHAR(start_date, 'YYYY mon month'), '')
		FROM trips
		ON CONFLICT (trip_id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to seed search surface: %w", err)
	}

	return nil
}
