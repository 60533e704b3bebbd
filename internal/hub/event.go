package hub

// Event is one user interaction on a page view.
type Event interface {
	event()
}

// SearchInput is a change of the search text.
type SearchInput struct {
	Value string
}

// CategoryChange is a change of the category selector. Empty selects all.
type CategoryChange struct {
	Value string
}

// KeyPress is a key pressed anywhere on the page.
type KeyPress struct {
	Key           string
	Ctrl          bool
	Meta          bool
	SearchFocused bool
}

// CardClick is a click on a card. OnVisitButton is set when the click
// landed on the visit button, which navigates by itself.
type CardClick struct {
	URL           string
	OnVisitButton bool
}

// VisitClick is a click on a card's visit button.
type VisitClick struct {
	URL string
}

// FaviconError reports a favicon that failed to load.
type FaviconError struct {
	URL string
}

func (SearchInput) event()    {}
func (CategoryChange) event() {}
func (KeyPress) event()       {}
func (CardClick) event()      {}
func (VisitClick) event()     {}
func (FaviconError) event()   {}
