package render

import (
	"github.com/MrSnakeDoc/sitehub/internal/domain"
)

// Renderer turns entry sequences into Target updates.
type Renderer struct {
	target         Target
	faviconService string

	// favicons that failed to load, by entry URL
	failed map[string]bool
}

// NewRenderer creates a renderer for target. An empty faviconService
// selects DefaultFaviconService.
func NewRenderer(target Target, faviconService string) *Renderer {
	if faviconService == "" {
		faviconService = DefaultFaviconService
	}
	return &Renderer{
		target:         target,
		faviconService: faviconService,
		failed:         make(map[string]bool),
	}
}

// Target returns the target this renderer draws on
func (r *Renderer) Target() Target {
	return r.target
}

// Render shows either the cards or the empty state, never both.
// It returns the cards it rendered.
func (r *Renderer) Render(entries []domain.Entry) []Card {
	if len(entries) == 0 {
		r.target.Cards(nil)
		r.target.Empty(true)
		return nil
	}

	cards := BuildCards(entries, r.faviconService)
	for i := range cards {
		cards[i].FaviconFailed = r.failed[cards[i].URL]
	}
	r.target.Cards(cards)
	r.target.Empty(false)
	return cards
}

// RenderCategories rebuilds the selector from the given categories.
func (r *Renderer) RenderCategories(categories []string, selected string) {
	r.target.CategoryOptions(domain.CategoryOptions(categories, selected))
}

// MarkFaviconFailed makes every later card for url show the placeholder glyph.
func (r *Renderer) MarkFaviconFailed(url string) {
	r.failed[url] = true
}
