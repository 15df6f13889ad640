package webclient

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy
)

// StripHTML removes markup from s, decodes entities and collapses whitespace.
// Source APIs return highlighted or formatted snippets that are displayed as plain text.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}
