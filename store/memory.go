package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process memory. It is safe for concurrent
// use and is lost on exit.
type MemoryStore struct {
	mu      sync.Mutex
	best    int
	results []Result
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) LoadBest(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	best := m.best
	for _, r := range m.results {
		best = max(best, r.Score)
	}
	return best, nil
}

func (m *MemoryStore) SaveBest(ctx context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.best = max(m.best, score)
	return nil
}

func (m *MemoryStore) RecordGame(ctx context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.results = append(m.results, r)
	return nil
}

func (m *MemoryStore) GetResult(ctx context.Context, id uuid.UUID) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.results {
		if r.ID == id {
			return r, nil
		}
	}
	return Result{}, ErrNotFound
}

func (m *MemoryStore) TopResults(ctx context.Context, n int) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 {
		return nil, nil
	}
	out := slices.Clone(m.results)
	slices.SortStableFunc(out, compareResults)
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// compareResults orders by score descending, then earliest finish first.
func compareResults(a, b Result) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return a.FinishedAt.Compare(b.FinishedAt)
}
