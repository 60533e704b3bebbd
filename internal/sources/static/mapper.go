package static

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
)

// Mapper converts catalog file records to domain entries
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapWebsites converts every valid record, in file order. Duplicates are
// kept. Records that fail entry validation are returned as errors.
func (m *Mapper) MapWebsites(file File) ([]domain.Entry, []error) {
	entries := make([]domain.Entry, 0, len(file.Websites))
	var skipped []error

	for i, w := range file.Websites {
		e := domain.Entry{
			Title:       strings.TrimSpace(w.Title),
			Description: w.Description,
			URL:         strings.TrimSpace(w.URL),
			Category:    strings.TrimSpace(w.Category),
			Favicon:     strings.TrimSpace(w.Favicon),
			Color:       strings.TrimSpace(w.Color),
		}

		if err := e.Validate(); err != nil {
			skipped = append(skipped, fmt.Errorf("websites[%d] %q: %w", i, w.Title, err))
			continue
		}

		entries = append(entries, e)
	}

	return entries, skipped
}

// FromEntries builds a catalog file holding entries, in order.
func FromEntries(entries []domain.Entry) File {
	file := File{Websites: make([]Website, 0, len(entries))}
	for _, e := range entries {
		file.Websites = append(file.Websites, Website{
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
			Category:    e.Category,
			Favicon:     e.Favicon,
			Color:       e.Color,
		})
	}
	return file
}
