package similarity

import (
	"regexp"
	"strings"
	"unicode"
)

var urlPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://\S+`)

// Normalize lowercases text, strips URL-like substrings, replaces every
// character that is not a letter or digit with a space, and collapses
// whitespace. Non-Latin scripts are preserved.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = urlPattern.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
