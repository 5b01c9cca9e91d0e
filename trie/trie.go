// Package trie indexes multi-word dictionary terms by token so that the
// longest phrase starting at a given query position can be found in one walk.
package trie

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/furniq"
)

type node struct {
	children  map[string]*node
	terminal  bool
	canonical string
	term      string
	depth     int
}

func newNode(depth int) *node {
	return &node{children: make(map[string]*node), depth: depth}
}

// Trie is an immutable token trie built from one dictionary.
type Trie struct {
	root        *node
	dict        *furniq.Dictionary
	fingerprint uint64
}

// New builds a trie holding every term of dict.
func New(dict *furniq.Dictionary) *Trie {
	t := &Trie{root: newNode(0), dict: dict}
	if dict == nil {
		return t
	}

	canonical := dict.TermToCanonical()
	for _, term := range dict.AllTerms() {
		t.insert(term, canonical[term])
	}
	t.fingerprint = Fingerprint(dict)
	return t
}

func (t *Trie) insert(term, canonical string) {
	tokens := strings.Fields(term)
	if len(tokens) == 0 || canonical == "" {
		return
	}

	n := t.root
	for _, tok := range tokens {
		child, ok := n.children[tok]
		if !ok {
			child = newNode(n.depth + 1)
			n.children[tok] = child
		}
		n = child
	}
	n.terminal = true
	n.canonical = canonical
	n.term = term
}

// Fingerprint hashes the term to label mapping of dict. Dictionaries with the
// same mapping have the same fingerprint.
func Fingerprint(dict *furniq.Dictionary) uint64 {
	if dict == nil {
		return 0
	}
	canonical := dict.TermToCanonical()
	keys := make([]string, 0, len(canonical))
	for k := range canonical {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := xxhash.New()
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(canonical[k])
		_, _ = h.WriteString("\x01")
	}
	return h.Sum64()
}

// Dictionary returns the dictionary the trie was built from.
func (t *Trie) Dictionary() *furniq.Dictionary { return t.dict }

// Fingerprint returns the fingerprint of the trie's dictionary.
func (t *Trie) Fingerprint() uint64 { return t.fingerprint }

func (t *Trie) match(tokens []string, start int, n *node) furniq.MatchResult {
	return furniq.MatchResult{
		Word:          strings.Join(tokens[start:start+n.depth], " "),
		Match:         n.term,
		CanonicalForm: n.canonical,
		Score:         1,
		Algorithm:     furniq.AlgorithmTrie,
		Category:      t.category(),
		Position:      start,
		Length:        n.depth,
	}
}

func (t *Trie) category() furniq.Category {
	if t.dict == nil {
		return 0
	}
	return t.dict.Category()
}

// FindLongestMatch returns the longest term starting at tokens[start].
// Tokens are expected to be normalized.
func (t *Trie) FindLongestMatch(tokens []string, start int) (furniq.MatchResult, bool) {
	var best *node
	t.walk(tokens, start, func(n *node) { best = n })
	if best == nil {
		return furniq.MatchResult{}, false
	}
	return t.match(tokens, start, best), true
}

// FindAllMatches returns every term starting at tokens[start], shortest first.
func (t *Trie) FindAllMatches(tokens []string, start int) []furniq.MatchResult {
	var out []furniq.MatchResult
	t.walk(tokens, start, func(n *node) { out = append(out, t.match(tokens, start, n)) })
	return out
}

// walk follows tokens from start and calls fn for every terminal node on the
// way.
func (t *Trie) walk(tokens []string, start int, fn func(*node)) {
	if start < 0 {
		return
	}
	n := t.root
	for i := start; i < len(tokens); i++ {
		child, ok := n.children[tokens[i]]
		if !ok {
			return
		}
		n = child
		if n.terminal {
			fn(n)
		}
	}
}

// FindByPrefix returns the canonical labels of all terms that start with the
// phrase, in lexical order of their tokens. Labels are de-duplicated.
func (t *Trie) FindByPrefix(phrase string) []string {
	n := t.find(phrase)
	if n == nil {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	var collect func(n *node)
	collect = func(n *node) {
		if n.terminal && !seen[n.canonical] {
			seen[n.canonical] = true
			out = append(out, n.canonical)
		}
		keys := make([]string, 0, len(n.children))
		for k := range n.children {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collect(n.children[k])
		}
	}
	collect(n)
	return out
}

func (t *Trie) find(phrase string) *node {
	tokens := strings.Fields(furniq.NormalizeTerm(phrase))
	if len(tokens) == 0 {
		return nil
	}
	n := t.root
	for _, tok := range tokens {
		child, ok := n.children[tok]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Contains reports whether term is a complete term of the trie.
func (t *Trie) Contains(term string) bool {
	n := t.find(term)
	return n != nil && n.terminal
}

// CanonicalForm returns the canonical label of a complete term.
func (t *Trie) CanonicalForm(term string) (string, bool) {
	n := t.find(term)
	if n == nil || !n.terminal {
		return "", false
	}
	return n.canonical, true
}

// Stats describes the shape of a trie. The root counts as a node at depth 0.
type Stats struct {
	Nodes    int `json:"nodes"`
	Terms    int `json:"terms"`
	MaxDepth int `json:"maxDepth"`
}

// Stats walks the trie and reports its shape.
func (t *Trie) Stats() Stats {
	var s Stats
	var visit func(n *node)
	visit = func(n *node) {
		s.Nodes++
		if n.terminal {
			s.Terms++
		}
		if n.depth > s.MaxDepth {
			s.MaxDepth = n.depth
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(t.root)
	return s
}

// Index holds the current trie of a category. Lookups always see a complete
// trie: UpdateDictionary builds a replacement and swaps it in atomically.
type Index struct {
	cur atomic.Pointer[Trie]
}

// NewIndex returns an index built from dict.
func NewIndex(dict *furniq.Dictionary) *Index {
	idx := &Index{}
	idx.cur.Store(New(dict))
	return idx
}

// Load returns the current trie. Callers should hold on to the returned trie
// for the duration of one operation to get a consistent view.
func (idx *Index) Load() *Trie {
	return idx.cur.Load()
}

// UpdateDictionary rebuilds the index from dict. It reports false and keeps
// the current trie when dict has the same mapping as the indexed one.
func (idx *Index) UpdateDictionary(dict *furniq.Dictionary) bool {
	if cur := idx.cur.Load(); cur != nil && cur.dict != nil && dict != nil && cur.fingerprint == Fingerprint(dict) {
		return false
	}
	idx.cur.Store(New(dict))
	return true
}
