package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/davidbz/forge/internal/domain"
)

// Memory is an ephemeral adapter keyed by normalized path, retrievable as a
// snapshot map. Used by the HTTP API so generated projects live only for the
// request.
type Memory struct {
	mu    sync.Mutex
	files domain.FileMap
}

// NewMemory creates an in-memory adapter.
func NewMemory() *Memory {
	return &Memory{
		mu:    sync.Mutex{},
		files: make(domain.FileMap),
	}
}

// EnsureDir is a no-op: directories are implicit in the path keys.
func (m *Memory) EnsureDir(_ context.Context, _ string) error {
	return nil
}

// SaveFile stores content keyed by the forward-slash normalized path.
func (m *Memory) SaveFile(_ context.Context, path, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[normalize(path)] = content
	return nil
}

// Files returns a snapshot of everything saved so far.
func (m *Memory) Files() domain.FileMap {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(domain.FileMap, len(m.files))
	for path, content := range m.files {
		snapshot[path] = content
	}
	return snapshot
}

// Clear drops all stored files.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(domain.FileMap)
}

func normalize(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
