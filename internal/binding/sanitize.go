package binding

import (
	"strings"
	"unicode"
)

// PlainText makes text safe for a terminal: escape sequences and other
// control characters are removed, line breaks and tabs become spaces.
func PlainText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\x1b':
			i = skipEscape(runes, i)
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// skipEscape returns the index of the last rune of the escape sequence
// starting at runes[start].
func skipEscape(runes []rune, start int) int {
	next := start + 1
	if next >= len(runes) {
		return start
	}
	switch runes[next] {
	case '[':
		// CSI: parameters and intermediates end with a byte in 0x40..0x7e.
		for i := next + 1; i < len(runes); i++ {
			if runes[i] >= 0x40 && runes[i] <= 0x7e {
				return i
			}
		}
		return len(runes) - 1
	case ']':
		// OSC: terminated by BEL or ST (ESC \).
		for i := next + 1; i < len(runes); i++ {
			if runes[i] == '\a' {
				return i
			}
			if runes[i] == '\x1b' && i+1 < len(runes) && runes[i+1] == '\\' {
				return i + 1
			}
		}
		return len(runes) - 1
	default:
		return next
	}
}
