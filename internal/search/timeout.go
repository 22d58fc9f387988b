package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// guard races a datastore call against the configured deadline. The budget
// sits strictly below the datastore's own statement_timeout so an overrun
// comes back as a recoverable signal here rather than a server-side kill.
// Once the deadline fires the call's result is discarded even if the
// datastore later completes it.
func (r *Resolver) guard(ctx context.Context, fn func(context.Context) error) error {
	gctx, cancel := context.WithTimeout(ctx, r.cfg.QueryTimeout)
	defer cancel()
	return classifyStoreError(fn(gctx))
}

// Postgres error codes the guard translates into recoverable signals.
const (
	pgQueryCanceled        = "57014" // statement_timeout fired server-side
	pgProgramLimitExceeded = "54000"
	pgStatementTooComplex  = "54001"
	pgInvalidRegex         = "2201B" // includes "regular expression is too complex"
)

// classifyStoreError maps deadline expiry and pattern-complexity rejections
// to the recoverable sentinels; anything else passes through for the
// orchestrator to surface as an unexpected failure.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrQueryTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgQueryCanceled:
			return ErrQueryTimeout
		case pgProgramLimitExceeded, pgStatementTooComplex, pgInvalidRegex:
			return ErrPatternRejected
		}
	}
	return fmt.Errorf("datastore call failed: %w", err)
}
