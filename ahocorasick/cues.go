// Package ahocorasick detects cue phrases in query text using an
// Aho-Corasick automaton from github.com/petar-dambovaliev/aho-corasick.
package ahocorasick

import (
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Cues finds which of a fixed set of phrases occur in a text. Matching is
// substring based and case-insensitive, so "armchair" contains "chair".
// A Cues value is immutable and safe for concurrent use.
type Cues struct {
	automaton aho.AhoCorasick
	patterns  []string
}

// NewCues compiles the automaton for phrases. Phrases are lowercased.
func NewCues(phrases ...string) *Cues {
	patterns := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(p); p != "" {
			patterns = append(patterns, p)
		}
	}

	c := &Cues{patterns: patterns}
	if len(patterns) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: true,
		})
		c.automaton = builder.Build(patterns)
	}
	return c
}

// Find returns the set of phrases present in text.
func (c *Cues) Find(text string) map[string]bool {
	found := make(map[string]bool)
	if len(c.patterns) == 0 || text == "" {
		return found
	}

	iter := c.automaton.IterOverlappingByte([]byte(strings.ToLower(text)))
	for next := iter.Next(); next != nil; next = iter.Next() {
		found[c.patterns[next.Pattern()]] = true
	}
	return found
}
