package domain

import "testing"

func TestCategories(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Entry
		expected []string
	}{
		{
			name: "uncategorized entry contributes nothing",
			entries: []Entry{
				{Title: "A", URL: "https://a.test"},
				{Title: "B", URL: "https://b.test", Category: "X"},
			},
			expected: []string{"X"},
		},
		{
			name: "duplicates collapse in first-seen order",
			entries: []Entry{
				{Title: "1", URL: "https://1.test", Category: "TV"},
				{Title: "2", URL: "https://2.test", Category: "Dev"},
				{Title: "3", URL: "https://3.test", Category: "TV"},
			},
			expected: []string{"TV", "Dev"},
		},
		{
			name: "case variants are distinct",
			entries: []Entry{
				{Title: "1", URL: "https://1.test", Category: "Dev"},
				{Title: "2", URL: "https://2.test", Category: "dev"},
			},
			expected: []string{"Dev", "dev"},
		},
		{
			name:     "empty catalog",
			entries:  nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Categories(tt.entries)
			if !slicesEqual(result, tt.expected) {
				t.Errorf("Categories() = %v, want %v", result, tt.expected)
			}
			for _, c := range result {
				if c == "" {
					t.Error("Categories() must never contain an empty string")
				}
			}
		})
	}
}

func TestCategoryOptions(t *testing.T) {
	options := CategoryOptions([]string{"TV", "Dev"}, "Dev")

	if len(options) != 3 {
		t.Fatalf("CategoryOptions() returned %d options, want 3", len(options))
	}
	if options[0].Value != "" || options[0].Label != AllCategoriesLabel {
		t.Errorf("first option = %+v, want the all-categories sentinel", options[0])
	}
	if options[0].Selected {
		t.Error("sentinel should not be selected when a category is selected")
	}
	if !options[2].Selected || options[2].Value != "Dev" {
		t.Errorf("options[2] = %+v, want selected Dev", options[2])
	}
}

func TestCategoryOptionsDefaultsToAll(t *testing.T) {
	options := CategoryOptions(nil, "")

	if len(options) != 1 {
		t.Fatalf("CategoryOptions() returned %d options, want 1", len(options))
	}
	if !options[0].Selected {
		t.Error("sentinel should be selected by default")
	}
}

func TestCategoryOptionsUnknownSelection(t *testing.T) {
	for _, o := range CategoryOptions([]string{"TV"}, "Other") {
		if o.Selected {
			t.Errorf("option %q selected for unknown category", o.Value)
		}
	}
}
