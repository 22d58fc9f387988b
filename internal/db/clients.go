package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tripsearch/internal/models"
)

const clientColumns = `id, full_name, email, home_city, notes, search_text, created_at, updated_at`

func scanClient(row pgx.Row) (*models.Client, error) {
	var client models.Client
	err := row.Scan(
		&client.ID,
		&client.FullName,
		&client.Email,
		&client.HomeCity,
		&client.Notes,
		&client.SearchText,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// ClientByID retrieves a client by primary key.
func (d *DB) ClientByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return scanClient(d.Pool.QueryRow(ctx, query, id))
}

// ClientByEmail retrieves a client by email, case-insensitively.
func (d *DB) ClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE LOWER(email) = LOWER($1)`
	return scanClient(d.Pool.QueryRow(ctx, query, email))
}

// RecentClients retrieves the most recently modified clients for diagnostics
// suggestions.
func (d *DB) RecentClients(ctx context.Context, limit int) ([]models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY updated_at DESC
		LIMIT $1
	`
	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(
			&client.ID,
			&client.FullName,
			&client.Email,
			&client.HomeCity,
			&client.Notes,
			&client.SearchText,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}
