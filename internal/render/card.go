package render

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
)

// DefaultFaviconService is used when no service template is configured.
// The single %s verb receives the entry domain.
const DefaultFaviconService = "https://www.google.com/s2/favicons?domain=%s&sz=32"

// CardStagger is the cosmetic entry-animation delay between two cards.
const CardStagger = 100 * time.Millisecond

// Card is the view model of one rendered entry.
type Card struct {
	Title       string
	Description string
	URL         string
	Domain      string
	FaviconURL  string
	Category    string
	Color       string

	// Index is the position in the rendered sequence.
	Index          int
	AnimationDelay time.Duration

	// FaviconFailed swaps the favicon image for the placeholder glyph.
	FaviconFailed bool
}

// ExtractDomain returns the lowercased host of rawURL without a leading
// "www.". When rawURL is not an absolute URL it is returned unchanged.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return rawURL
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// FaviconURL returns the entry's own favicon or the service lookup for its domain.
func FaviconURL(e domain.Entry, service string) string {
	if e.Favicon != "" {
		return e.Favicon
	}
	if service == "" {
		service = DefaultFaviconService
	}
	return fmt.Sprintf(service, url.QueryEscape(ExtractDomain(e.URL)))
}

// BuildCards maps entries to cards, keeping their order.
func BuildCards(entries []domain.Entry, faviconService string) []Card {
	cards := make([]Card, 0, len(entries))
	for i, e := range entries {
		cards = append(cards, Card{
			Title:          e.Title,
			Description:    e.Description,
			URL:            e.URL,
			Domain:         ExtractDomain(e.URL),
			FaviconURL:     FaviconURL(e, faviconService),
			Category:       e.Category,
			Color:          e.Color,
			Index:          i,
			AnimationDelay: time.Duration(i) * CardStagger,
		})
	}
	return cards
}
