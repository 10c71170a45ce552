package evaluation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes, so
// "Café" and "cafe" normalize to the same string.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases, removes diacritics, replaces punctuation with
// spaces, and collapses runs of whitespace. It is idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		// Malformed input falls back to the raw text; the scorers
		// still compare case-insensitively.
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsSpace(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits normalized text into words.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}
