package render

import "github.com/MrSnakeDoc/sitehub/internal/domain"

// Target is the surface a Renderer draws on: an HTML document, a terminal,
// or a recorder in tests.
type Target interface {
	// Cards replaces the card container content. nil clears it.
	Cards(cards []Card)

	// Empty toggles the empty-state indicator. While it is shown the card
	// container is hidden.
	Empty(show bool)

	// CategoryOptions replaces the selector options.
	CategoryOptions(options []domain.Option)

	// Loading toggles the loading indicator.
	Loading(show bool)

	// FocusSearch moves input focus to the search field.
	FocusSearch()

	// SearchValue sets the displayed search text.
	SearchValue(value string)
}
