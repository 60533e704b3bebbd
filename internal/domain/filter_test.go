package domain

import (
	"testing"
)

func testCatalog() []Entry {
	return []Entry{
		{Title: "FireTv1", Description: "All in one reborn", URL: "https://allinone.test/livetv-hub/", Category: "TV", Color: "#04a3ffff"},
		{Title: "FireTv1", Description: "All in one reborn 2", URL: "https://mirror.test/jiotv-plus/", Category: "TV", Color: "#04a3ffff"},
		{Title: "Acme", Description: "tools", URL: "https://acme.test", Category: "Dev"},
		{Title: "Docs", Description: "Reference manuals", URL: "https://docs.test"},
		{Title: "Lowercase", Description: "category case", URL: "https://case.test", Category: "dev"},
	}
}

func titles(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title+"|"+e.URL)
	}
	return out
}

func TestFilterEmptyQueryReturnsCatalog(t *testing.T) {
	catalog := testCatalog()

	filtered := Filter(catalog, Query{})

	if !slicesEqual(titles(filtered), titles(catalog)) {
		t.Errorf("Filter() = %v, want %v", titles(filtered), titles(catalog))
	}
}

func TestFilterSearch(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		expected []string
	}{
		{
			name:     "title substring",
			search:   "firetv",
			expected: []string{"FireTv1|https://allinone.test/livetv-hub/", "FireTv1|https://mirror.test/jiotv-plus/"},
		},
		{
			name:     "description substring",
			search:   "tool",
			expected: []string{"Acme|https://acme.test"},
		},
		{
			name:     "url substring",
			search:   "jiotv",
			expected: []string{"FireTv1|https://mirror.test/jiotv-plus/"},
		},
		{
			name:     "category substring",
			search:   "tv",
			expected: []string{"FireTv1|https://allinone.test/livetv-hub/", "FireTv1|https://mirror.test/jiotv-plus/"},
		},
		{
			name:     "uncategorized entry still matches on other fields",
			search:   "manuals",
			expected: []string{"Docs|https://docs.test"},
		},
		{
			name:     "no token matching",
			search:   "acme tools",
			expected: []string{},
		},
		{
			name:     "no match",
			search:   "xyz",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := Filter(testCatalog(), Query{Search: tt.search})
			if !slicesEqual(titles(filtered), tt.expected) {
				t.Errorf("Filter(%q) = %v, want %v", tt.search, titles(filtered), tt.expected)
			}
		})
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	catalog := testCatalog()

	upper := Filter(catalog, Query{Search: "FIRETV1"})
	lower := Filter(catalog, Query{Search: "firetv1"})

	if len(upper) != 2 {
		t.Fatalf("Filter(FIRETV1) returned %d entries, want 2", len(upper))
	}
	if !slicesEqual(titles(upper), titles(lower)) {
		t.Errorf("Filter(FIRETV1) = %v, Filter(firetv1) = %v", titles(upper), titles(lower))
	}
}

func TestFilterCategory(t *testing.T) {
	catalog := testCatalog()

	for _, e := range catalog {
		if e.Category == "" {
			continue
		}
		if !Matches(e, Query{Category: e.Category}) {
			t.Errorf("Matches(%s, category=%q) = false, want true", e.Title, e.Category)
		}
		for _, other := range Categories(catalog) {
			if other == e.Category {
				continue
			}
			if Matches(e, Query{Category: other}) {
				t.Errorf("Matches(%s, category=%q) = true, want false", e.Title, other)
			}
		}
	}
}

func TestFilterCategoryIsCaseSensitive(t *testing.T) {
	filtered := Filter(testCatalog(), Query{Category: "Dev"})

	want := []string{"Acme|https://acme.test"}
	if !slicesEqual(titles(filtered), want) {
		t.Errorf("Filter(category=Dev) = %v, want %v", titles(filtered), want)
	}
}

func TestFilterUncategorizedNeverMatchesCategory(t *testing.T) {
	e := Entry{Title: "Docs", Description: "Reference", URL: "https://docs.test"}

	if Matches(e, Query{Category: "Docs"}) {
		t.Error("uncategorized entry should not match a non-empty category")
	}
	if !Matches(e, Query{}) {
		t.Error("uncategorized entry should match the empty query")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	catalog := testCatalog()
	before := titles(catalog)
	q := Query{Search: "a", Category: "TV"}

	first := Filter(catalog, q)
	second := Filter(catalog, q)

	if !slicesEqual(titles(first), titles(second)) {
		t.Errorf("Filter() not idempotent: %v then %v", titles(first), titles(second))
	}
	if !slicesEqual(titles(catalog), before) {
		t.Errorf("Filter() mutated catalog order: %v, want %v", titles(catalog), before)
	}
}

func TestFilterScenarios(t *testing.T) {
	acme := []Entry{{Title: "Acme", Description: "tools", URL: "https://acme.test", Category: "Dev"}}

	tests := []struct {
		name  string
		query Query
		want  int
	}{
		{name: "no filter", query: Query{}, want: 1},
		{name: "description search", query: Query{Search: "tool"}, want: 1},
		{name: "unknown category", query: Query{Category: "Other"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := Filter(acme, tt.query)
			if len(filtered) != tt.want {
				t.Errorf("Filter(%+v) returned %d entries, want %d", tt.query, len(filtered), tt.want)
			}
		})
	}
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
