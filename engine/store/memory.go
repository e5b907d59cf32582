// Package store provides RunStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/sales-simulator/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	runs map[string]engine.Run
}

var _ engine.RunStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		runs: make(map[string]engine.Run),
	}
}

func (m *Memory) SaveRun(_ context.Context, run engine.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *Memory) GetRun(_ context.Context, id string) (*engine.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, engine.ErrRunNotFound
	}
	return &run, nil
}

// ListRuns returns runs newest first, ties broken by ID.
func (m *Memory) ListRuns(_ context.Context, limit int) ([]engine.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]engine.Run, 0, len(m.runs))
	for _, run := range m.runs {
		result = append(result, run)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *Memory) DeleteRun(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[id]; !ok {
		return engine.ErrRunNotFound
	}
	delete(m.runs, id)
	return nil
}

// Reset drops every run.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = make(map[string]engine.Run)
}
