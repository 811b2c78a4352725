package core

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	anonymousName = "anon"
	maxNameRunes  = 32
)

var namePolicy = bluemonday.StrictPolicy()

// SanitizeName strips markup from a sender name, trims it and caps its
// length. Blank names become "anon".
func SanitizeName(name string) string {
	cleaned := html.UnescapeString(namePolicy.Sanitize(name))
	cleaned = strings.TrimSpace(cleaned)

	if utf8.RuneCountInString(cleaned) > maxNameRunes {
		cleaned = string([]rune(cleaned)[:maxNameRunes])
	}
	if cleaned == "" {
		return anonymousName
	}
	return cleaned
}
