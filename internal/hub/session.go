package hub

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/render"
)

// Opener navigates to a URL in a new browsing context that gets neither
// an opener reference nor a referrer.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// Session is one page view: a query state rendered on a target.
// Events are handled one at a time.
type Session struct {
	hub      *Hub
	renderer *render.Renderer
	opener   Opener

	mu    sync.Mutex
	query domain.Query
	cards []render.Card
}

// NewSession opens a page view on target with an initial query and renders
// it. opener may be nil when the target navigates by itself.
func (h *Hub) NewSession(target render.Target, opener Opener, q domain.Query) *Session {
	s := &Session{
		hub:      h,
		renderer: render.NewRenderer(target, h.faviconService),
		opener:   opener,
		query:    q,
	}

	target.Loading(true)
	target.SearchValue(q.Search)

	// registered before the first render so no catalog change is missed
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	s.mu.Lock()
	s.refresh()
	s.mu.Unlock()
	h.mu.Unlock()

	target.Loading(false)
	return s
}

// Close detaches the session from catalog changes.
func (s *Session) Close() {
	s.hub.unregister(s)
}

// Query returns the current query state
func (s *Session) Query() domain.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Cards returns the cards currently shown
func (s *Session) Cards() []render.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]render.Card(nil), s.cards...)
}

// Dispatch handles one event.
func (s *Session) Dispatch(ctx context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.renderer.Target()

	switch ev := ev.(type) {
	case SearchInput:
		s.query.Search = ev.Value
		target.SearchValue(ev.Value)
		s.render()

	case CategoryChange:
		s.query.Category = ev.Value
		s.refresh()

	case KeyPress:
		switch {
		case (ev.Ctrl || ev.Meta) && strings.EqualFold(ev.Key, "k"):
			target.FocusSearch()
		case ev.Key == "Escape" && ev.SearchFocused:
			s.query.Search = ""
			target.SearchValue("")
			s.render()
		}

	case CardClick:
		if ev.OnVisitButton {
			return nil
		}
		return s.open(ctx, ev.URL)

	case VisitClick:
		return s.open(ctx, ev.URL)

	case FaviconError:
		s.renderer.MarkFaviconFailed(ev.URL)
		s.render()

	default:
		return fmt.Errorf("unknown event %T", ev)
	}

	return nil
}

func (s *Session) open(ctx context.Context, url string) error {
	s.hub.RecordVisit(ctx, url)
	if s.opener == nil {
		return nil
	}
	if err := s.opener.Open(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// refresh re-derives the category index and re-renders.
// Callers hold s.mu, or own s exclusively.
func (s *Session) refresh() {
	s.renderer.RenderCategories(s.hub.Categories(), s.query.Category)
	s.render()
}

func (s *Session) render() {
	s.cards = s.renderer.Render(s.hub.View(s.query))
}
