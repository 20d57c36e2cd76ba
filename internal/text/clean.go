package text

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^\w\s.,?!]`)
)

// Clean normalizes raw dataset text: whitespace runs collapse to a single
// space, characters outside the allowed set (alphanumerics, whitespace and
// ".,?!") are replaced with a space, the result is lowercased and trimmed.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = disallowedRe.ReplaceAllString(s, " ")
	s = strings.ToLower(s)
	return strings.TrimSpace(s)
}
