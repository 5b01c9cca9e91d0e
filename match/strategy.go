package match

import (
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/fwojciec/furniq"
)

// Priority groups algorithms. Lower values are tried first.
type Priority int

// Priorities of the built-in algorithms.
const (
	PriorityExact      Priority = 1
	PrioritySimilarity Priority = 2
	PriorityEditDist   Priority = 3
	PriorityPhonetic   Priority = 4
)

// AlgorithmConfig tunes how the strategy treats one algorithm.
type AlgorithmConfig struct {
	Priority     Priority `json:"priority"`
	Reliability  float64  `json:"reliability"`
	MinThreshold float64  `json:"minThreshold"`
}

// DefaultConfigs returns the built-in algorithm configuration.
func DefaultConfigs() map[furniq.Algorithm]AlgorithmConfig {
	return map[furniq.Algorithm]AlgorithmConfig{
		furniq.AlgorithmExact:       {Priority: PriorityExact, Reliability: 1.0, MinThreshold: 1.0},
		furniq.AlgorithmJaroWinkler: {Priority: PrioritySimilarity, Reliability: 0.85, MinThreshold: 0.8},
		furniq.AlgorithmLevenshtein: {Priority: PriorityEditDist, Reliability: 0.75, MinThreshold: 0.7},
		furniq.AlgorithmSoundex:     {Priority: PriorityPhonetic, Reliability: 0.6, MinThreshold: 0.5},
	}
}

// Unknown algorithms fall into the last group and are filtered by this
// threshold.
const defaultMinThreshold = 0.5

// MinWordLength is the shortest word the strategy will try to match.
const MinWordLength = 2

// DefaultTopN is the number of candidates FindTopMatches returns when n <= 0.
const DefaultTopN = 3

// scoreEpsilon is the weighted-score difference below which two candidates
// are ordered by their raw score.
const scoreEpsilon = 0.001

// Strategy runs a set of matchers and picks the most trustworthy result.
// A Strategy is safe for concurrent use.
type Strategy struct {
	mu       sync.RWMutex
	matchers []furniq.Matcher
	configs  map[furniq.Algorithm]AlgorithmConfig
	logger   *slog.Logger
}

// Option configures a Strategy.
type Option func(*Strategy)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Strategy) {
		s.logger = logger
	}
}

// WithConfigs replaces the algorithm configuration.
func WithConfigs(configs map[furniq.Algorithm]AlgorithmConfig) Option {
	return func(s *Strategy) {
		s.configs = configs
	}
}

// NewStrategy returns a strategy running matchers in order.
func NewStrategy(matchers []furniq.Matcher, opts ...Option) *Strategy {
	s := &Strategy{
		matchers: append([]furniq.Matcher(nil), matchers...),
		configs:  DefaultConfigs(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddMatcher appends a matcher. Its results are configured by the algorithm
// they report; unknown algorithms get the lowest priority.
func (s *Strategy) AddMatcher(m furniq.Matcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchers = append(s.matchers, m)
}

// Len returns the number of registered matchers.
func (s *Strategy) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matchers)
}

// AlgorithmConfigs returns a copy of the algorithm configuration.
func (s *Strategy) AlgorithmConfigs() map[furniq.Algorithm]AlgorithmConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[furniq.Algorithm]AlgorithmConfig, len(s.configs))
	for k, v := range s.configs {
		out[k] = v
	}
	return out
}

// UpdateAlgorithmConfig sets the configuration of one algorithm.
func (s *Strategy) UpdateAlgorithmConfig(algorithm furniq.Algorithm, cfg AlgorithmConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	configs := make(map[furniq.Algorithm]AlgorithmConfig, len(s.configs)+1)
	for k, v := range s.configs {
		configs[k] = v
	}
	configs[algorithm] = cfg
	s.configs = configs
}

type candidate struct {
	result   furniq.MatchResult
	config   AlgorithmConfig
	known    bool
	weighted float64
}

// collect runs every matcher and keeps the results above their algorithm's
// threshold.
func (s *Strategy) collect(word string, terms []string, canonical map[string]string) []candidate {
	s.mu.RLock()
	matchers := s.matchers
	configs := s.configs
	s.mu.RUnlock()

	var out []candidate
	for _, m := range matchers {
		r, ok := m.FindMatch(word, terms, canonical)
		if !ok {
			continue
		}
		cfg, known := configs[r.Algorithm]
		if !known {
			cfg = AlgorithmConfig{Priority: PriorityPhonetic, Reliability: 1, MinThreshold: defaultMinThreshold}
		}
		if r.Score < cfg.MinThreshold {
			s.logger.Debug("match below threshold", "word", word, "algorithm", r.Algorithm, "score", r.Score)
			continue
		}
		out = append(out, candidate{result: r, config: cfg, known: known, weighted: r.Score * cfg.Reliability})
	}
	return out
}

// less orders candidates by priority, then weighted score, then raw score.
// Candidates of unknown algorithms are compared by raw score only.
func less(a, b candidate) bool {
	if a.config.Priority != b.config.Priority {
		return a.config.Priority < b.config.Priority
	}
	if !a.known || !b.known {
		return a.result.Score > b.result.Score
	}
	if math.Abs(a.weighted-b.weighted) > scoreEpsilon {
		return a.weighted > b.weighted
	}
	return a.result.Score > b.result.Score
}

// FuzzyFloor returns the minimum score a fuzzy match needs for a word of the
// given length. Short words need closer matches.
func FuzzyFloor(length int) float64 {
	switch {
	case length <= 3:
		return 0.9
	case length <= 5:
		return 0.85
	case length <= 8:
		return 0.8
	default:
		return 0.75
	}
}

// FindBestMatch returns the most trustworthy match for word.
//
// Priority groups are tried in order. An exact match wins outright; in the
// fuzzy groups the best candidate is accepted only when its raw score
// reaches FuzzyFloor for the word length.
func (s *Strategy) FindBestMatch(word string, terms []string, canonical map[string]string) (furniq.MatchResult, bool) {
	length := utf8.RuneCountInString(word)
	if length < MinWordLength {
		return furniq.MatchResult{}, false
	}

	candidates := s.collect(word, terms, canonical)
	if len(candidates) == 0 {
		return furniq.MatchResult{}, false
	}

	groups := make(map[Priority][]candidate)
	var priorities []Priority
	for _, c := range candidates {
		if _, ok := groups[c.config.Priority]; !ok {
			priorities = append(priorities, c.config.Priority)
		}
		groups[c.config.Priority] = append(groups[c.config.Priority], c)
	}
	sort.Slice(priorities, func(i, j int) bool { return priorities[i] < priorities[j] })

	floor := FuzzyFloor(length)
	for _, p := range priorities {
		group := groups[p]
		if p == PriorityExact {
			return group[0].result, true
		}
		sort.SliceStable(group, func(i, j int) bool { return less(group[i], group[j]) })
		best := group[0]
		if best.result.Score >= floor {
			s.logger.Debug("fuzzy match accepted", "word", word, "match", best.result.Match,
				"algorithm", best.result.Algorithm, "score", best.result.Score)
			return best.result, true
		}
	}
	return furniq.MatchResult{}, false
}

// FindTopMatches returns up to n candidates above their algorithm threshold,
// best first. n <= 0 means DefaultTopN.
func (s *Strategy) FindTopMatches(word string, terms []string, canonical map[string]string, n int) []furniq.MatchResult {
	if n <= 0 {
		n = DefaultTopN
	}
	if utf8.RuneCountInString(word) < MinWordLength {
		return nil
	}

	candidates := s.collect(word, terms, canonical)
	sort.SliceStable(candidates, func(i, j int) bool { return less(candidates[i], candidates[j]) })
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]furniq.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.result)
	}
	return out
}
