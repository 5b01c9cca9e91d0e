// Package matchr provides fuzzy single-word matchers backed by the
// github.com/antzucaro/matchr string metrics.
package matchr

import (
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"github.com/fwojciec/furniq"
)

var (
	_ furniq.Matcher = (*Levenshtein)(nil)
	_ furniq.Matcher = (*JaroWinkler)(nil)
	_ furniq.Matcher = (*Soundex)(nil)
)

// canonicalOf resolves term, falling back to the term itself.
func canonicalOf(term string, canonical map[string]string) string {
	if label, ok := canonical[term]; ok {
		return label
	}
	return term
}

// MaxLengthDelta is the largest length difference Levenshtein will compare.
const MaxLengthDelta = 3

// Levenshtein matches words within a small edit distance of a term.
type Levenshtein struct{}

// NewLevenshtein returns a Levenshtein matcher.
func NewLevenshtein() *Levenshtein { return &Levenshtein{} }

// FindMatch scans terms in order and returns the first term whose distance
// is within max(1, len(word)/3). Terms whose length differs from the word by
// more than MaxLengthDelta are skipped.
func (l *Levenshtein) FindMatch(word string, terms []string, canonical map[string]string) (furniq.MatchResult, bool) {
	word = strings.ToLower(word)
	wordLen := utf8.RuneCountInString(word)
	if wordLen == 0 {
		return furniq.MatchResult{}, false
	}
	allowed := max(1, wordLen/3)

	best, bestDist := "", -1
	for _, term := range terms {
		termLen := utf8.RuneCountInString(term)
		if abs(termLen-wordLen) > MaxLengthDelta {
			continue
		}

		d := matchr.Levenshtein(word, term)
		if bestDist < 0 || d < bestDist {
			best, bestDist = term, d
		}

		if bestDist <= allowed {
			longest := max(wordLen, utf8.RuneCountInString(best))
			return furniq.MatchResult{
				Word:          word,
				Match:         best,
				CanonicalForm: canonicalOf(best, canonical),
				Score:         1 - float64(bestDist)/float64(longest),
				Algorithm:     furniq.AlgorithmLevenshtein,
			}, true
		}
	}
	return furniq.MatchResult{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// MinJaroWinkler is the similarity a JaroWinkler match must reach.
const MinJaroWinkler = 0.8

// JaroWinkler matches words by Jaro-Winkler similarity.
type JaroWinkler struct{}

// NewJaroWinkler returns a Jaro-Winkler matcher.
func NewJaroWinkler() *JaroWinkler { return &JaroWinkler{} }

// FindMatch returns the most similar term, ignoring case. The first term
// wins ties.
func (j *JaroWinkler) FindMatch(word string, terms []string, canonical map[string]string) (furniq.MatchResult, bool) {
	word = strings.ToLower(word)
	if word == "" {
		return furniq.MatchResult{}, false
	}

	best, bestScore := "", 0.0
	for _, term := range terms {
		if s := matchr.JaroWinkler(word, strings.ToLower(term), false); s > bestScore {
			best, bestScore = term, s
		}
	}
	if best == "" || bestScore < MinJaroWinkler {
		return furniq.MatchResult{}, false
	}
	return furniq.MatchResult{
		Word:          word,
		Match:         best,
		CanonicalForm: canonicalOf(best, canonical),
		Score:         bestScore,
		Algorithm:     furniq.AlgorithmJaroWinkler,
	}, true
}

// Soundex matches words that sound alike.
type Soundex struct {
	logger *slog.Logger
}

// NewSoundex returns a Soundex matcher. A nil logger discards output.
func NewSoundex(logger *slog.Logger) *Soundex {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Soundex{logger: logger}
}

// FindMatch returns the first term with the same Soundex code as word.
// Words or terms that cannot be encoded never match.
func (s *Soundex) FindMatch(word string, terms []string, canonical map[string]string) (furniq.MatchResult, bool) {
	code, ok := s.encode(word)
	if !ok {
		return furniq.MatchResult{}, false
	}

	for _, term := range terms {
		if c, ok := s.encode(term); ok && c == code {
			return furniq.MatchResult{
				Word:          word,
				Match:         term,
				CanonicalForm: canonicalOf(term, canonical),
				Score:         1,
				Algorithm:     furniq.AlgorithmSoundex,
			}, true
		}
	}
	return furniq.MatchResult{}, false
}

func (s *Soundex) encode(text string) (code string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("soundex encoding failed", "text", text, "panic", r)
			code, ok = "", false
		}
	}()

	if !hasLetter(text) {
		return "", false
	}
	code = matchr.Soundex(text)
	return code, code != ""
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
