package domain

// AllCategoriesLabel is the label of the sentinel "match all" option.
const AllCategoriesLabel = "All Categories"

// Option is one choice of the category selector.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Categories returns the distinct non-empty categories of entries,
// in first-seen order.
func Categories(entries []Entry) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)

	for _, e := range entries {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		categories = append(categories, e.Category)
	}

	return categories
}

// CategoryOptions builds the selector options: the "all" sentinel first
// (empty value, never a real category), then one option per category.
// An unknown selected value leaves every option unselected.
func CategoryOptions(categories []string, selected string) []Option {
	options := make([]Option, 0, len(categories)+1)
	options = append(options, Option{
		Value:    "",
		Label:    AllCategoriesLabel,
		Selected: selected == "",
	})

	for _, c := range categories {
		options = append(options, Option{
			Value:    c,
			Label:    c,
			Selected: c == selected,
		})
	}

	return options
}
