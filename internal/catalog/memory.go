package catalog

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
)

// Memory holds the ordered website catalog.
// Order is significant and duplicates (including duplicate URLs) are kept.
type Memory struct {
	mu         sync.RWMutex
	entries    []domain.Entry
	lastReload time.Time
}

// NewMemory creates an empty catalog
func NewMemory() *Memory {
	return &Memory{
		entries: make([]domain.Entry, 0),
	}
}

// Replace swaps the whole catalog
func (m *Memory) Replace(entries []domain.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make([]domain.Entry, len(entries))
	copy(m.entries, entries)
	m.lastReload = time.Now()
}

// All returns a copy of the catalog in order
func (m *Memory) All() []domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Append adds an entry at the end of the catalog
func (m *Memory) Append(e domain.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, e)
}

// RemoveByURL deletes every entry whose URL equals url and returns how many
// were removed. Unknown URLs are a no-op.
func (m *Memory) RemoveByURL(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0:0]
	for _, e := range m.entries {
		if e.URL != url {
			kept = append(kept, e)
		}
	}
	removed := len(m.entries) - len(kept)
	m.entries = kept
	return removed
}

// UpdateByURL merges patch into the first entry whose URL equals url.
// It reports whether an entry was found.
func (m *Memory) UpdateByURL(url string, patch domain.EntryPatch) (domain.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.URL == url {
			m.entries[i] = e.Apply(patch)
			return m.entries[i], true
		}
	}
	return domain.Entry{}, false
}

// Count returns the number of entries
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// LastReload returns the timestamp of the last Replace
func (m *Memory) LastReload() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastReload
}
