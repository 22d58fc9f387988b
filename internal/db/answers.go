package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tripsearch/internal/models"
)

const answerColumns = `id, natural_key, context_type, formatted_text, payload,
	keywords, access_count, last_accessed, created_at, updated_at`

func scanAnswer(row pgx.Row) (*models.PrecomputedAnswer, error) {
	var a models.PrecomputedAnswer
	err := row.Scan(
		&a.ID,
		&a.NaturalKey,
		&a.ContextType,
		&a.FormattedText,
		&a.Payload,
		&a.Keywords,
		&a.AccessCount,
		&a.LastAccessed,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AnswerByNaturalKey retrieves the current cached answer for a natural key,
// case-insensitively. If stale duplicates exist the newest row wins, so a
// refresh that raced the janitor still resolves correctly.
func (d *DB) AnswerByNaturalKey(ctx context.Context, key string) (*models.PrecomputedAnswer, error) {
	query := `
		SELECT ` + answerColumns + `
		FROM precomputed_answers
		WHERE LOWER(natural_key) = LOWER($1)
		ORDER BY updated_at DESC
		LIMIT 1
	`
	return scanAnswer(d.Pool.QueryRow(ctx, query, key))
}

// RelatedAnswers retrieves cached answers whose natural keys appear in the
// given answer's payload under "related_keys" (e.g. client profiles
// referenced by a trip answer).
func (d *DB) RelatedAnswers(ctx context.Context, answer *models.PrecomputedAnswer) ([]models.PrecomputedAnswer, error) {
	query := `
		SELECT ` + answerColumns + `
		FROM precomputed_answers
		WHERE LOWER(natural_key) IN (
			SELECT LOWER(jsonb_array_elements_text(payload->'related_keys'))
			FROM precomputed_answers
			WHERE id = $1
		)
		ORDER BY updated_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, answer.ID)
	if err != nil {
		return nil, err
	}
	return scanAnswers(rows)
}

func scanAnswers(rows pgx.Rows) ([]models.PrecomputedAnswer, error) {
	defer rows.Close()

	var answers []models.PrecomputedAnswer
	for rows.Next() {
		var a models.PrecomputedAnswer
		if err := rows.Scan(
			&a.ID,
			&a.NaturalKey,
			&a.ContextType,
			&a.FormattedText,
			&a.Payload,
			&a.Keywords,
			&a.AccessCount,
			&a.LastAccessed,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// TouchAnswer bumps the access metadata for a cached answer. Best-effort:
// concurrent hits on the same key may lose updates, which is tolerated.
func (d *DB) TouchAnswer(ctx context.Context, key string, contextType models.ContextType) error {
	query := `
		UPDATE precomputed_answers
		SET access_count = access_count + 1, last_accessed = NOW()
		WHERE LOWER(natural_key) = LOWER($1) AND context_type = $2
	`
	_, err := d.Pool.Exec(ctx, query, key, string(contextType))
	return err
}

// UpsertAnswer refreshes the cached answer for (natural_key, context_type).
// Stale rows for the key are retired in the same transaction, never left to
// accumulate.
func (d *DB) UpsertAnswer(ctx context.Context, answer *models.PrecomputedAnswer) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin answer refresh: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM precomputed_answers
		WHERE LOWER(natural_key) = LOWER($1) AND context_type = $2
	`, answer.NaturalKey, string(answer.ContextType))
	if err != nil {
		return fmt.Errorf("failed to retire stale answers: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO precomputed_answers (natural_key, context_type, formatted_text, payload, keywords)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, access_count, created_at, updated_at
	`,
		answer.NaturalKey,
		string(answer.ContextType),
		answer.FormattedText,
		answer.Payload,
		answer.Keywords,
	).Scan(&answer.ID, &answer.AccessCount, &answer.CreatedAt, &answer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert answer: %w", err)
	}

	return tx.Commit(ctx)
}

// RetireStaleAnswers deletes all but the newest row per (natural_key,
// context_type). Duplicate accumulation is a known failure mode when
// external writers bypass UpsertAnswer; the janitor calls this on a timer.
func (d *DB) RetireStaleAnswers(ctx context.Context) (int64, error) {
	result, err := d.Pool.Exec(ctx, `
		DELETE FROM precomputed_answers a
		USING precomputed_answers b
		WHERE LOWER(a.natural_key) = LOWER(b.natural_key)
			AND a.context_type = b.context_type
			AND (a.updated_at, a.id) < (b.updated_at, b.id)
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
