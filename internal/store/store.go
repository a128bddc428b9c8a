// internal/store/store.go
//
// Persistence for benchmark runs. Puzzles and solve attempts are never
// stored; only the summaries produced by the bench package are.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("not found")

const defaultListLimit = 20

// Store defines the persistence interface for bench runs.
// Implementations: memory (this package) and SQLite.
type Store interface {
	// Save persists or replaces a run.
	Save(ctx context.Context, r *bench.Run) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*bench.Run, error)

	// List returns the most recent runs, newest first.
	// A non-positive limit means the default (20).
	List(ctx context.Context, limit int) ([]bench.Run, error)

	Close() error
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
