// Package term renders the directory as cards on a terminal.
package term

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
	"github.com/MrSnakeDoc/sitehub/internal/render"
)

const (
	cardWidth    = 48
	defaultColor = "63"
	emptyMessage = "No websites match your search."
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	domainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("153")).Padding(0, 1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// Screen is a render.Target writing to a terminal.
// Every Cards/Empty pair redraws the card list.
type Screen struct {
	mu    sync.Mutex
	out   io.Writer
	plain bool

	cards   []render.Card
	options []domain.Option
	search  string
}

// New creates a screen on out. Styling is disabled when out is not a terminal.
func New(out io.Writer) *Screen {
	return &Screen{out: out, plain: !IsTerminal(out)}
}

// NewPlain creates a screen that never styles its output.
func NewPlain(out io.Writer) *Screen {
	return &Screen{out: out, plain: true}
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *Screen) Cards(cards []render.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = cards
}

// Empty draws either the cards or the empty state.
func (s *Screen) Empty(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if show {
		s.println(s.muted(emptyMessage))
		return
	}
	for _, c := range s.cards {
		s.println(s.card(c))
	}
}

func (s *Screen) CategoryOptions(options []domain.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = options
}

// Loading shows a transient indicator on styled terminals only.
func (s *Screen) Loading(show bool) {
	if show && !s.plain {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.println(s.muted("Loading..."))
	}
}

func (s *Screen) FocusSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.println(s.muted("search> "))
}

func (s *Screen) SearchValue(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = value
}

// Status prints the current query and the selector choices.
func (s *Screen) Status() {
	s.mu.Lock()
	defer s.mu.Unlock()

	labels := make([]string, 0, len(s.options))
	for _, o := range s.options {
		label := o.Label
		if o.Selected {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	s.println(s.muted(fmt.Sprintf("search=%q categories: %s", s.search, strings.Join(labels, " | "))))
}

func (s *Screen) card(c render.Card) string {
	if s.plain {
		line := fmt.Sprintf("%d. %s - %s (%s)", c.Index+1, c.Title, c.Description, c.Domain)
		if c.Category != "" {
			line += " [" + c.Category + "]"
		}
		return line + "\n   " + c.URL
	}

	color := c.Color
	if color == "" {
		color = defaultColor
	}
	header := titleStyle.Render(fmt.Sprintf("%d. %s", c.Index+1, c.Title))
	if c.Category != "" {
		header += " " + categoryStyle.Render(c.Category)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		c.Description,
		domainStyle.Render(c.Domain),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1).
		Width(cardWidth).
		Render(body)
}

func (s *Screen) muted(text string) string {
	if s.plain {
		return text
	}
	return mutedStyle.Render(text)
}

func (s *Screen) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}
