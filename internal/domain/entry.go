package domain

import (
	"errors"
	"strings"
)

var (
	ErrMissingTitle = errors.New("entry title is required")
	ErrMissingURL   = errors.New("entry url is required")
)

// Entry is one catalog record describing a single linked destination.
//
// URL identifies an entry for update and remove operations, but it is not
// unique: duplicate URLs are legal and are listed independently.
type Entry struct {
	// ─────────────────────────────
	// Displayed fields
	// ─────────────────────────────

	// Title is the display name.
	Title string `json:"title" yaml:"title"`

	// Description is shown verbatim (escaped before display).
	Description string `json:"description" yaml:"description"`

	// URL is the navigation target. It is also searched.
	// Example: https://acme.test
	URL string `json:"url" yaml:"url"`

	// ─────────────────────────────
	// Optional presentation
	// ─────────────────────────────

	// Category groups entries. Empty means uncategorized: the entry is
	// left out of the category index but still listed without a filter.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Favicon overrides the favicon service lookup.
	Favicon string `json:"favicon,omitempty" yaml:"favicon,omitempty"`

	// Color is a decorative accent. Example: #ff6b6b
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Validate checks that title and url are present. A url that does not
// parse as an absolute URL is still valid: its card shows the raw string
// instead of a domain.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(e.URL) == "" {
		return ErrMissingURL
	}
	return nil
}

// EntryPatch carries a partial update. Nil fields are left untouched.
type EntryPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
	Category    *string `json:"category,omitempty"`
	Favicon     *string `json:"favicon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.URL == nil &&
		p.Category == nil && p.Favicon == nil && p.Color == nil
}

// Apply returns e with the supplied patch fields merged in.
func (e Entry) Apply(p EntryPatch) Entry {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.URL != nil {
		e.URL = *p.URL
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Favicon != nil {
		e.Favicon = *p.Favicon
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	return e
}

// Validate checks the fields the patch supplies, as Entry.Validate would.
func (p EntryPatch) Validate() error {
	base := Entry{Title: "-", URL: "-"}
	return base.Apply(p).Validate()
}
