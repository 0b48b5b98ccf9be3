package textutil

import (
	"regexp"
	"strings"
)

var (
	footnotePattern = regexp.MustCompile(`(?is)<sup[^>]*>.*?</sup>`)
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// StripTags removes inline markup from API text. Footnote references are
// dropped with their content; other tags keep their inner text.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
	}
	s = footnotePattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}
