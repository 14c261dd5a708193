// Package sanitize cleans free text supplied by API callers before it is
// stored on a session or echoed back.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup, decodes entities and strips again so encoded
// tags do not survive.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = html.UnescapeString(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text strips markup and collapses runs of whitespace to single spaces.
func Text(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}

// Truncate returns Text(s) cut to at most max runes.
func Truncate(s string, max int) string {
	s = Text(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}
