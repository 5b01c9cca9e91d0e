package extract

import (
	"github.com/fwojciec/furniq"
)

// Lookup resolves phrase against the dictionary of one category. It reports
// whether the phrase is a complete term, the canonical labels of the terms
// it starts, and up to n fuzzy candidates (n <= 0 means match.DefaultTopN).
// An unknown or empty category yields a lookup with no matches.
func (a *Analyzer) Lookup(category furniq.Category, phrase string, n int) furniq.TermLookup {
	l := furniq.TermLookup{
		Category:    category,
		Phrase:      phrase,
		Completions: []string{},
		Fuzzy:       []furniq.MatchResult{},
	}

	t, ok := a.tries()[category]
	if !ok || t.Dictionary() == nil {
		return l
	}

	if t.Contains(phrase) {
		l.Known = true
		l.Canonical, _ = t.CanonicalForm(phrase)
	}
	if completions := t.FindByPrefix(phrase); completions != nil {
		l.Completions = completions
	}

	d := t.Dictionary()
	if fuzzy := a.strategy.FindTopMatches(furniq.NormalizeTerm(phrase), d.AllTerms(), d.TermToCanonical(), n); fuzzy != nil {
		l.Fuzzy = fuzzy
	}
	return l
}
