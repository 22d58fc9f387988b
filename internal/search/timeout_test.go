package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyStoreError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"deadline", context.DeadlineExceeded, ErrQueryTimeout},
		{"server side cancel", &pgconn.PgError{Code: "57014"}, ErrQueryTimeout},
		{"program limit", &pgconn.PgError{Code: "54000"}, ErrPatternRejected},
		{"statement too complex", &pgconn.PgError{Code: "54001"}, ErrPatternRejected},
		{"regex too complex", &pgconn.PgError{Code: "2201B"}, ErrPatternRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyStoreError(tt.in)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyStoreError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifyStoreError_PassesThroughUnknown(t *testing.T) {
	in := errors.New("connection refused")
	got := classifyStoreError(in)
	if got == nil || recoverable(got) {
		t.Errorf("classifyStoreError(%v) = %v, want a non-recoverable passthrough", in, got)
	}
	if !errors.Is(got, in) {
		t.Errorf("classifyStoreError(%v) lost the underlying error: %v", in, got)
	}
}

func TestGuard_DeadlineBecomesRecoverableTimeout(t *testing.T) {
	r := NewResolver(&fakeStore{}, nil, Config{QueryTimeout: 10 * time.Millisecond}, quietLogger())

	err := r.guard(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, ErrQueryTimeout) {
		t.Errorf("guard() error = %v, want ErrQueryTimeout", err)
	}
	if !recoverable(err) {
		t.Error("guarded timeout is not recoverable")
	}
}

func TestGuard_PropagatesCallerCancellation(t *testing.T) {
	r := NewResolver(&fakeStore{}, nil, Config{}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.guard(ctx, func(ctx context.Context) error {
		return ctx.Err()
	})
	if err == nil || recoverable(err) {
		t.Errorf("guard() error = %v, want a non-recoverable cancellation", err)
	}
}
