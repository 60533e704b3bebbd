package htmlpage

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// accentColor accepts hex colors (#rgb to #rrggbbaa) and named colors.
var accentColor = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

var gridPolicy = newGridPolicy()

// newGridPolicy keeps only card markup. Links are forced to open in a new
// browsing context without opener or referrer.
func newGridPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("article", "div", "h3", "p", "span", "i")
	policy.AllowAttrs("class").Globally()
	policy.AllowDataAttributes()
	policy.AllowAttrs("aria-label", "aria-hidden").Globally()

	policy.AllowImages()
	policy.AllowAttrs("class", "alt", "loading", "width", "height").OnElements("img")

	policy.AllowStandardURLs()
	policy.AllowURLSchemes("http", "https")
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	policy.AllowStyles("background").Matching(accentColor).OnElements("div")
	return policy
}
