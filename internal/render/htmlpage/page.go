// Package htmlpage renders the directory as an HTML document.
package htmlpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/render"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("htmlpage").
		Funcs(template.FuncMap{"delayMs": delayMs}).
		ParseFS(templateFS, "templates/*.html.tmpl"),
)

func delayMs(d time.Duration) int64 {
	return d.Milliseconds()
}

// DefaultTitle is the document title when none is configured.
const DefaultTitle = "Website Hub"

// Page is a render.Target that accumulates the state of one document.
type Page struct {
	mu sync.Mutex

	title          string
	visitsEndpoint string

	cards   []render.Card
	empty   bool
	options []domain.Option
	loading bool
	search  string
	focus   bool
}

// Option configures a Page.
type Option func(*Page)

// WithVisitsEndpoint sets the URL the page script posts navigations to.
// Empty disables visit reporting.
func WithVisitsEndpoint(endpoint string) Option {
	return func(p *Page) { p.visitsEndpoint = endpoint }
}

// New creates an empty page.
func New(title string, opts ...Option) *Page {
	if title == "" {
		title = DefaultTitle
	}
	p := &Page{title: title}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Page) Cards(cards []render.Card) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cards = cards
}

func (p *Page) Empty(show bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.empty = show
}

func (p *Page) CategoryOptions(options []domain.Option) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.options = options
}

func (p *Page) Loading(show bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = show
}

func (p *Page) FocusSearch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.focus = true
}

func (p *Page) SearchValue(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.search = value
}

type document struct {
	Title          string
	VisitsEndpoint string
	Search         string
	Focus          bool
	Options        []domain.Option
	Loading        bool
	Empty          bool
	Grid           template.HTML
}

// WriteGrid writes the sanitized card container content.
func (p *Page) WriteGrid(w io.Writer) error {
	p.mu.Lock()
	cards := p.cards
	p.mu.Unlock()

	grid, err := renderGrid(cards)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(grid))
	return err
}

// WriteDocument writes the complete HTML document.
func (p *Page) WriteDocument(w io.Writer) error {
	p.mu.Lock()
	doc := document{
		Title:          p.title,
		VisitsEndpoint: p.visitsEndpoint,
		Search:         p.search,
		Focus:          p.focus || p.search != "",
		Options:        p.options,
		Loading:        p.loading,
		Empty:          p.empty,
	}
	cards := p.cards
	p.mu.Unlock()

	grid, err := renderGrid(cards)
	if err != nil {
		return err
	}
	doc.Grid = grid

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page", doc); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// renderGrid executes the card template and passes the result through the
// grid policy.
func renderGrid(cards []render.Card) (template.HTML, error) {
	if len(cards) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "grid", cards); err != nil {
		return "", fmt.Errorf("execute grid template: %w", err)
	}

	return template.HTML(gridPolicy.SanitizeBytes(buf.Bytes())), nil
}
