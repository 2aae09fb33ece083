package utils

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxSlugLength leaves room for an extension and a collision suffix within
// the usual 255 byte filename limit.
const maxSlugLength = 200

// BookSlug turns a book title into a filename friendly identifier. Letters
// keep their diacritics; every run of other characters becomes one hyphen.
//
//	"Ender's Game (Card, Orson Scott)" -> "ender-s-game-card-orson-scott"
func BookSlug(title string) string {
	title = strings.ToLower(norm.NFC.String(title))

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := builder.String()
	if len(slug) > maxSlugLength {
		slug = truncateRunes(slug, maxSlugLength)
		slug = strings.TrimRight(slug, "-")
	}

	if slug == "" {
		return "untitled"
	}
	return slug
}

// UniqueSlug returns slug, or slug with a -2, -3, ... suffix when used
// already holds it, and records the result in used.
func UniqueSlug(used map[string]bool, slug string) string {
	unique := slug
	for i := 2; used[unique]; i++ {
		unique = fmt.Sprintf("%s-%d", slug, i)
	}
	used[unique] = true
	return unique
}

// truncateRunes cuts s to at most maxBytes without splitting a rune.
func truncateRunes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := 0
	for i := range s {
		if i > maxBytes {
			break
		}
		cut = i
	}
	return s[:cut]
}
