// Package normalize flattens raw markup (HTML pages, PDF-extracted text)
// into plain strings suitable for indexing and embedding. Stripping is
// best-effort and regex-based: malformed markup never raises an error.
package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptTag  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	comments   = regexp.MustCompile(`(?s)<!--.*?-->`)
	allTags    = regexp.MustCompile(`<[^>]+>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Text strips markup from the input: script and style blocks are removed
// entirely, remaining tags are dropped, HTML entities are decoded, and
// runs of whitespace collapse to a single space. Empty input yields an
// empty string.
func Text(markup string) string {
	if markup == "" {
		return ""
	}

	t := scriptTag.ReplaceAllString(markup, " ")
	t = styleTag.ReplaceAllString(t, " ")
	t = comments.ReplaceAllString(t, " ")
	t = allTags.ReplaceAllString(t, " ")
	t = html.UnescapeString(t)
	t = whitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
