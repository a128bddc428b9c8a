// internal/store/memory.go
//
// In-memory implementation of Store.
// Used when no database is configured and in tests.
//
// Characteristics:
//   - Runs kept in insertion order; List returns newest first.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
)

// memory is a slice-backed Store.
type memory struct {
	mu   sync.RWMutex
	runs []bench.Run
	byID map[string]int // Run.ID -> index into runs
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{byID: make(map[string]int)}
}

// Save adds the run, replacing an earlier run with the same ID.
func (m *memory) Save(ctx context.Context, r *bench.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.byID[r.ID]; ok {
		m.runs[i] = *r
		return nil
	}
	m.byID[r.ID] = len(m.runs)
	m.runs = append(m.runs, *r)
	return nil
}

// Get looks up a run by ID.
func (m *memory) Get(ctx context.Context, id string) (*bench.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.byID[id]; ok {
		r := m.runs[i]
		return &r, nil
	}
	return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
}

// List returns up to limit runs, newest first.
func (m *memory) List(ctx context.Context, limit int) ([]bench.Run, error) {
	limit = clampLimit(limit)
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]bench.Run, 0, min(limit, len(m.runs)))
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *memory) Close() error { return nil }
