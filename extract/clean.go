package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/furniq"
)

var (
	punctuationRe = regexp.MustCompile(`[()\[\]{}.,;:!?'"]`)
	nonWordRe     = regexp.MustCompile(`[^\w\s-]`)
)

// CleanText folds accents, replaces punctuation and any other character that
// is not a word character, whitespace or hyphen with a space, then collapses
// whitespace. Case is preserved.
func CleanText(text string) string {
	s := furniq.FoldAccents(text)
	s = punctuationRe.ReplaceAllString(s, " ")
	s = nonWordRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// token is a word of the cleaned query with its original position.
type token struct {
	text string
	pos  int
}

func tokenize(cleaned string) []token {
	fields := strings.Fields(strings.ToLower(cleaned))
	out := make([]token, len(fields))
	for i, f := range fields {
		out[i] = token{text: f, pos: i}
	}
	return out
}

func words(tokens []token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.text
	}
	return out
}
