package domain

import "strings"

// Matches reports whether an entry passes both the search and the category
// predicate of q.
func Matches(e Entry, q Query) bool {
	return matchesSearch(e, strings.ToLower(q.Search)) && matchesCategory(e, q.Category)
}

// Filter returns the entries matching q, in catalog order.
// The input slice is never modified.
func Filter(entries []Entry, q Query) []Entry {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, q) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// matchesSearch expects term to be lowercased already.
func matchesSearch(e Entry, term string) bool {
	if term == "" {
		return true
	}

	if strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Description), term) ||
		strings.Contains(strings.ToLower(e.URL), term) {
		return true
	}

	// Uncategorized entries skip the category clause
	return e.Category != "" && strings.Contains(strings.ToLower(e.Category), term)
}

// matchesCategory is an exact, case-sensitive comparison.
func matchesCategory(e Entry, category string) bool {
	return category == "" || e.Category == category
}
