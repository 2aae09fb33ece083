package tolino

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// ’ ‘ ´ `
	apostrophePattern = regexp.MustCompile("[‘’´`]")
	// “ ” « »
	quotePattern = regexp.MustCompile("[“”«»]+")
)

// CleanString normalizes quotes, apostrophes, ellipses and whitespace in s.
// When stripQuotes is set, one leading and one trailing straight double quote
// are removed before normalizing.
func CleanString(s string, stripQuotes bool) string {
	s = strings.TrimSpace(s)
	if stripQuotes {
		s = strings.TrimSuffix(s, `"`)
		s = strings.TrimPrefix(s, `"`)
	}
	s = apostrophePattern.ReplaceAllString(s, "'")
	s = quotePattern.ReplaceAllString(s, `"`)
	s = strings.ReplaceAll(s, "''", `"`)
	s = collapseWhitespace(s)
	s = strings.ReplaceAll(s, "…", "...")
	return strings.TrimSpace(s)
}

// collapseWhitespace replaces every run of whitespace, line breaks included,
// with a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeInlineSpace turns every whitespace rune except line breaks into a
// plain space, keeping the line structure intact.
func normalizeInlineSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && r != '\r' && unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}
