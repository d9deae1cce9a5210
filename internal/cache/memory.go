// Package cache provides prompt-keyed memoization of resolved completions.
// The in-memory implementation is bounded by TTL and entry count; identical
// prompt text is treated as an identical request.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/davidbz/forge/internal/domain"
)

type entry struct {
	text      string
	expiresAt time.Time
}

// Memory is a TTL and size bounded in-process prompt cache.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]entry
	order      []string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemory creates an in-memory prompt cache. A non-positive maxEntries
// disables the size bound; a non-positive ttl disables expiry.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	return &Memory{
		mu:         sync.Mutex{},
		entries:    make(map[string]entry),
		order:      nil,
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached text for a prompt, or ErrCacheMiss.
func (m *Memory) Get(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cached, exists := m.entries[prompt]
	if !exists {
		return "", domain.ErrCacheMiss
	}

	if !cached.expiresAt.IsZero() && m.now().After(cached.expiresAt) {
		delete(m.entries, prompt)
		m.removeFromOrder(prompt)
		return "", domain.ErrCacheMiss
	}

	return cached.text, nil
}

// Set stores the resolved text for a prompt, evicting the oldest entry when
// the size bound is reached.
func (m *Memory) Set(_ context.Context, prompt, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[prompt]; !exists {
		if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
			m.evictOldest()
		}
		m.order = append(m.order, prompt)
	}

	expiresAt := time.Time{}
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}

	m.entries[prompt] = entry{text: text, expiresAt: expiresAt}
	return nil
}

// evictOldest drops the oldest inserted entry. Caller holds the lock.
func (m *Memory) evictOldest() {
	for len(m.order) > 0 {
		oldest := m.order[0]
		m.order = m.order[1:]
		if _, exists := m.entries[oldest]; exists {
			delete(m.entries, oldest)
			return
		}
	}
}

// removeFromOrder drops one tracked name. Caller holds the lock.
func (m *Memory) removeFromOrder(prompt string) {
	for i, name := range m.order {
		if name == prompt {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// Len returns the number of live entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
