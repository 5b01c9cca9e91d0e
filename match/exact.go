// Package match combines single-word matchers into a prioritized strategy.
package match

import (
	"strings"

	"github.com/fwojciec/furniq"
)

var _ furniq.Matcher = (*Exact)(nil)

// Exact matches a word that is itself a dictionary term.
type Exact struct{}

// NewExact returns an exact matcher.
func NewExact() *Exact { return &Exact{} }

// FindMatch looks the lowercased word up in canonical.
func (e *Exact) FindMatch(word string, _ []string, canonical map[string]string) (furniq.MatchResult, bool) {
	key := strings.ToLower(word)
	label, ok := canonical[key]
	if !ok {
		return furniq.MatchResult{}, false
	}
	return furniq.MatchResult{
		Word:          word,
		Match:         key,
		CanonicalForm: label,
		Score:         1,
		Algorithm:     furniq.AlgorithmExact,
	}, true
}
