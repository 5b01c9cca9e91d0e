package extract

import (
	"regexp"

	"github.com/fwojciec/furniq"
	"github.com/fwojciec/furniq/trie"
)

// MultiFuzzyMin is the score a fuzzy match needs in a multi-valued category.
const MultiFuzzyMin = 0.95

// brandBlocklist holds furniture-part nouns that are never brand names.
var brandBlocklist = map[string]bool{
	"legs": true, "leg": true, "back": true, "seat": true, "arm": true, "arms": true,
	"cushion": true, "cushions": true, "frame": true, "base": true, "top": true,
	"surface": true, "drawer": true, "drawers": true, "door": true, "doors": true,
	"shelf": true, "shelves": true, "handle": true, "handles": true, "feet": true,
	"foot": true, "backrest": true, "armrest": true, "headrest": true,
}

var numericRe = regexp.MustCompile(`^\d+$`)

// categoryPolicy describes how one category is extracted.
type categoryPolicy struct {
	// multi categories keep every match; the others keep the first.
	multi bool
	// fuzzy enables the matching strategy for tokens the trie missed.
	fuzzy bool
	// blocked words are excluded from trie phrases and fuzzy candidates.
	blocked func(word string) bool
	// exactOnly words may match through the trie but never fuzzily.
	exactOnly func(word string) bool
}

var categoryPolicies = map[furniq.Category]categoryPolicy{
	furniq.CategoryProductType: {fuzzy: true},
	furniq.CategoryBrand: {
		fuzzy:     true,
		blocked:   func(w string) bool { return brandBlocklist[w] },
		exactOnly: numericRe.MatchString,
	},
	furniq.CategoryProductName: {},
	furniq.CategoryFeature:     {multi: true, fuzzy: true},
	furniq.CategoryStyle:       {multi: true, fuzzy: true},
	furniq.CategoryPlace:       {multi: true, fuzzy: true},
}

func (p categoryPolicy) isBlocked(word string) bool {
	return p.blocked != nil && p.blocked(word)
}

func (p categoryPolicy) fuzzyEligible(word string) bool {
	if p.isBlocked(word) {
		return false
	}
	return p.exactOnly == nil || !p.exactOnly(word)
}

func (p categoryPolicy) phraseBlocked(tokens []string) bool {
	for _, t := range tokens {
		if p.isBlocked(t) {
			return true
		}
	}
	return false
}

// extractor runs one category over the remaining tokens of a pass.
type extractor struct {
	category furniq.Category
	policy   categoryPolicy
	trie     *trie.Trie
	fuzzy    func(word string, terms []string, canonical map[string]string) (furniq.MatchResult, bool)
}

// extraction is what an extractor found.
type extraction struct {
	matches   []furniq.MatchResult
	remaining []token
}

func (e *extractor) run(tokens []token) extraction {
	if e.trie == nil || e.trie.Dictionary() == nil || len(tokens) == 0 {
		return extraction{remaining: tokens}
	}

	consumed := make([]bool, len(tokens))
	var matches []furniq.MatchResult
	if e.policy.multi {
		matches = e.multi(tokens, consumed)
	} else {
		matches = e.single(tokens, consumed)
	}

	remaining := make([]token, 0, len(tokens))
	for i, t := range tokens {
		if !consumed[i] {
			remaining = append(remaining, t)
		}
	}
	return extraction{matches: matches, remaining: remaining}
}

// single returns the first trie match scanning left to right, or else the
// best fuzzy match among the single tokens.
func (e *extractor) single(tokens []token, consumed []bool) []furniq.MatchResult {
	ws := words(tokens)
	for i := range ws {
		candidates := e.trie.FindAllMatches(ws, i)
		for j := len(candidates) - 1; j >= 0; j-- {
			m := candidates[j]
			if e.policy.phraseBlocked(ws[m.Position : m.Position+m.Length]) {
				continue
			}
			return []furniq.MatchResult{e.accept(m, tokens, consumed)}
		}
	}

	if !e.policy.fuzzy {
		return nil
	}

	dict := e.trie.Dictionary()
	var best furniq.MatchResult
	bestIdx := -1
	for i, w := range ws {
		if !e.policy.fuzzyEligible(w) {
			continue
		}
		m, ok := e.fuzzy(w, dict.AllTerms(), dict.TermToCanonical())
		if !ok {
			continue
		}
		if bestIdx < 0 || m.Score > best.Score {
			best, bestIdx = m, i
		}
	}
	if bestIdx < 0 {
		return nil
	}
	best.Position, best.Length = bestIdx, 1
	return []furniq.MatchResult{e.accept(best, tokens, consumed)}
}

// multi returns every non-overlapping longest trie match. Fuzzy matching is
// only attempted when the trie found nothing.
func (e *extractor) multi(tokens []token, consumed []bool) []furniq.MatchResult {
	ws := words(tokens)
	var out []furniq.MatchResult
	for i := 0; i < len(ws); {
		m, ok := e.trie.FindLongestMatch(ws, i)
		if !ok {
			i++
			continue
		}
		out = append(out, e.accept(m, tokens, consumed))
		i += m.Length
	}
	if len(out) > 0 || !e.policy.fuzzy {
		return out
	}

	dict := e.trie.Dictionary()
	for i, w := range ws {
		if !e.policy.fuzzyEligible(w) {
			continue
		}
		m, ok := e.fuzzy(w, dict.AllTerms(), dict.TermToCanonical())
		if !ok || m.Score < MultiFuzzyMin {
			continue
		}
		m.Position, m.Length = i, 1
		out = append(out, e.accept(m, tokens, consumed))
	}
	return out
}

// accept marks the tokens of m as consumed and rewrites its position to the
// token offset in the cleaned query.
func (e *extractor) accept(m furniq.MatchResult, tokens []token, consumed []bool) furniq.MatchResult {
	for k := m.Position; k < m.Position+m.Length && k < len(tokens); k++ {
		consumed[k] = true
	}
	m.Category = e.category
	m.Position = tokens[m.Position].pos
	return m
}
