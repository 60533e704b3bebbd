// Package hub holds the live directory state: the catalog, its static
// source and the page views rendering it.
package hub

import (
	"context"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/sitehub/internal/catalog"
	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/logger"
)

// Source loads the catalog from static configuration.
type Source interface {
	Load(ctx context.Context) ([]domain.Entry, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]domain.Entry, error)

func (f SourceFunc) Load(ctx context.Context) ([]domain.Entry, error) { return f(ctx) }

// Recorder receives navigations. It is optional and best effort.
type Recorder interface {
	RecordVisit(ctx context.Context, url string) error
}

// Hub owns the catalog and fans every change out to the open sessions.
type Hub struct {
	// mu serializes catalog mutations with the session re-render that follows.
	mu sync.Mutex
	// loadMu keeps each source load paired with its catalog replace.
	loadMu sync.Mutex

	catalog        *catalog.Memory
	source         Source
	faviconService string
	recorder       Recorder
	logger         logger.Logger

	sessions map[*Session]struct{}
}

// Option configures a Hub.
type Option func(*Hub)

// WithFaviconService sets the favicon lookup template (one %s verb).
func WithFaviconService(service string) Option {
	return func(h *Hub) { h.faviconService = service }
}

// WithRecorder enables visit recording.
func WithRecorder(r Recorder) Option {
	return func(h *Hub) { h.recorder = r }
}

// New creates a hub. The catalog starts empty until Refresh or AddEntry.
func New(source Source, log logger.Logger, opts ...Option) *Hub {
	h := &Hub{
		catalog:  catalog.NewMemory(),
		source:   source,
		logger:   log,
		sessions: make(map[*Session]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Catalog returns the underlying store
func (h *Hub) Catalog() *catalog.Memory {
	return h.catalog
}

// Entries returns the whole catalog in order
func (h *Hub) Entries() []domain.Entry {
	return h.catalog.All()
}

// Categories returns the category index of the current catalog
func (h *Hub) Categories() []string {
	return domain.Categories(h.catalog.All())
}

// View returns the entries matching q
func (h *Hub) View(q domain.Query) []domain.Entry {
	if q.IsZero() {
		return h.catalog.All()
	}
	return domain.Filter(h.catalog.All(), q)
}

// AddEntry appends a valid entry and re-renders every session.
func (h *Hub) AddEntry(e domain.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("add entry: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.catalog.Append(e)
	h.logger.Debug("entry added", logger.String("url", e.URL))
	h.refreshSessions()
	return nil
}

// RemoveEntry removes every entry whose URL equals url and returns how many
// were removed. Sessions are only re-rendered when something changed.
func (h *Hub) RemoveEntry(url string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := h.catalog.RemoveByURL(url)
	if removed > 0 {
		h.logger.Debug("entries removed", logger.String("url", url), logger.Int("count", removed))
		h.refreshSessions()
	}
	return removed
}

// UpdateEntry merges patch into the first entry whose URL equals url.
func (h *Hub) UpdateEntry(url string, patch domain.EntryPatch) (domain.Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	updated, ok := h.catalog.UpdateByURL(url, patch)
	if ok {
		h.logger.Debug("entry updated", logger.String("url", url))
		h.refreshSessions()
	}
	return updated, ok
}

// Refresh reloads the catalog from the source. A failing source empties
// the catalog; the error is logged and returned. Query state survives.
// Concurrent refreshes run one after the other.
func (h *Hub) Refresh(ctx context.Context) error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	entries, err := h.source.Load(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err != nil {
		h.logger.Warn("catalog unavailable, showing empty directory", logger.Error(err))
		h.catalog.Replace(nil)
		h.refreshSessions()
		return fmt.Errorf("refresh catalog: %w", err)
	}

	h.catalog.Replace(entries)
	h.logger.Info("catalog loaded", logger.Int("count", len(entries)))
	h.refreshSessions()
	return nil
}

// RecordVisit forwards a navigation to the recorder, if any.
// Failures are logged at debug and never reported to the caller.
func (h *Hub) RecordVisit(ctx context.Context, url string) {
	if h.recorder == nil {
		return
	}
	if err := h.recorder.RecordVisit(ctx, url); err != nil {
		h.logger.Debug("visit not recorded", logger.String("url", url), logger.Error(err))
	}
}

// SessionCount returns the number of open sessions
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s)
}

// refreshSessions must be called with h.mu held.
func (h *Hub) refreshSessions() {
	for s := range h.sessions {
		s.mu.Lock()
		s.refresh()
		s.mu.Unlock()
	}
}
