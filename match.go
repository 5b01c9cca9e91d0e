package furniq

// Algorithm names the technique that produced a match.
type Algorithm string

// Known algorithms. Trie is used for dictionary phrase matches, the others
// for single-token matching.
const (
	AlgorithmExact       Algorithm = "Exact"
	AlgorithmJaroWinkler Algorithm = "JaroWinkler"
	AlgorithmLevenshtein Algorithm = "Levenshtein"
	AlgorithmSoundex     Algorithm = "SoundEx"
	AlgorithmTrie        Algorithm = "Trie"
)

// MatchResult describes how a word or phrase of the query resolved to a
// dictionary term.
type MatchResult struct {
	Word          string    `json:"word"`
	Match         string    `json:"match"`
	CanonicalForm string    `json:"canonicalForm"`
	Score         float64   `json:"score"`
	Algorithm     Algorithm `json:"algorithm"`
	Category      Category  `json:"category,omitempty"`

	// Position is the token offset of the match in the cleaned query and
	// Length the number of tokens it spans. Length is zero for matches that
	// carry no position.
	Position int `json:"position"`
	Length   int `json:"length,omitempty"`
}

// Matcher finds the best dictionary term for a single word.
//
// terms lists the normalized dictionary terms in order and canonical maps
// each of them to its label. FindMatch returns false when no term is close
// enough for the implementation's own acceptance rule.
type Matcher interface {
	FindMatch(word string, terms []string, canonical map[string]string) (MatchResult, bool)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(word string, terms []string, canonical map[string]string) (MatchResult, bool)

// FindMatch calls f.
func (f MatcherFunc) FindMatch(word string, terms []string, canonical map[string]string) (MatchResult, bool) {
	return f(word, terms, canonical)
}
