package domain

// Query is the query state of one page view.
// Both keys are independent; an empty key matches everything.
type Query struct {
	// Search is matched as a case-insensitive substring.
	Search string `json:"search"`

	// Category is matched exactly against Entry.Category.
	Category string `json:"category"`
}

// IsZero reports whether the query matches every entry.
func (q Query) IsZero() bool {
	return q.Search == "" && q.Category == ""
}
