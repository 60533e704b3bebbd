package homepage

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/sitehub/internal/domain"
)

// DashboardIcons is where gethomepage resolves bare icon file names.
const DashboardIcons = "https://cdn.jsdelivr.net/gh/homarr-labs/dashboard-icons"

// Mapper converts gethomepage groups to catalog entries. The group name
// becomes the category.
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapServices converts every service with a valid href.
func (m *Mapper) MapServices(config ServicesConfig) ([]domain.Entry, []error) {
	var entries []domain.Entry
	var skipped []error

	for _, groupMap := range config {
		for _, group := range sortedKeys(groupMap) {
			for _, serviceMap := range groupMap[group] {
				for _, name := range sortedKeys(serviceMap) {
					props := serviceMap[name]
					e := domain.Entry{
						Title:       strings.TrimSpace(name),
						Description: props.Description,
						URL:         strings.TrimSpace(props.Href),
						Category:    strings.TrimSpace(group),
						Favicon:     iconURL(props.Icon),
					}
					if err := e.Validate(); err != nil {
						skipped = append(skipped, fmt.Errorf("%s/%s: %w", group, name, err))
						continue
					}
					entries = append(entries, e)
				}
			}
		}
	}

	return entries, skipped
}

// MapBookmarks converts every bookmark with a valid href. The abbreviation
// stands in for a missing description.
func (m *Mapper) MapBookmarks(config BookmarksConfig) ([]domain.Entry, []error) {
	var entries []domain.Entry
	var skipped []error

	for _, groupMap := range config {
		for _, group := range sortedKeys(groupMap) {
			for _, bookmarkMap := range groupMap[group] {
				for _, name := range sortedKeys(bookmarkMap) {
					list := bookmarkMap[name]
					if len(list) == 0 {
						continue
					}
					b := list[0]

					description := b.Description
					if description == "" {
						description = b.Abbr
					}
					e := domain.Entry{
						Title:       strings.TrimSpace(name),
						Description: description,
						URL:         strings.TrimSpace(b.Href),
						Category:    strings.TrimSpace(group),
						Favicon:     iconURL(b.Icon),
					}
					if err := e.Validate(); err != nil {
						skipped = append(skipped, fmt.Errorf("%s/%s: %w", group, name, err))
						continue
					}
					entries = append(entries, e)
				}
			}
		}
	}

	return entries, skipped
}

// iconURL resolves a gethomepage icon reference to an image URL.
// Absolute URLs are kept and file names point at the dashboard icons CDN.
// Icon font references (mdi-*, si-*) have no image and resolve to "".
func iconURL(icon string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" {
		return ""
	}
	if u, err := url.Parse(icon); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return icon
	}

	switch ext := strings.TrimPrefix(path.Ext(icon), "."); ext {
	case "png", "svg", "webp":
		return fmt.Sprintf("%s/%s/%s", DashboardIcons, ext, path.Base(icon))
	default:
		return ""
	}
}

// sortedKeys keeps multi-key maps deterministic. gethomepage files hold
// one key per list item, so file order is preserved.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
