package furniq

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents strips combining marks so that "españa" and "espana" compare
// equal. Input that cannot be transformed is returned unchanged.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeTerm returns the lookup key for a dictionary term or query word:
// accent-folded, lowercased, trimmed, with inner whitespace collapsed.
func NormalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(FoldAccents(s))), " ")
}
