package homepage

// ServicesConfig is the top-level structure of a gethomepage services.yaml.
// Groups and services use dynamic keys:
//
//	---
//	- Group:
//	    - Service Name:
//	        href: https://...
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps holds the service fields that matter to a link directory.
// Widgets and monitors are decoded and ignored.
type ServiceProps struct {
	Href        string                 `yaml:"href"`
	Icon        string                 `yaml:"icon,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Target      string                 `yaml:"target,omitempty"`
	Ping        string                 `yaml:"ping,omitempty"`
	SiteMonitor string                 `yaml:"siteMonitor,omitempty"`
	Widget      map[string]interface{} `yaml:"widget,omitempty"`
}

// BookmarksConfig is the top-level structure of a gethomepage bookmarks.yaml.
// Each bookmark name maps to a list holding a single entry:
//
//	---
//	- Group:
//	    - Bookmark Name:
//	        - abbr: BN
//	          href: https://...
type BookmarksConfig []map[string][]map[string][]BookmarkEntry

// BookmarkEntry is one bookmark
type BookmarkEntry struct {
	Icon        string `yaml:"icon"`
	Abbr        string `yaml:"abbr"`
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}
