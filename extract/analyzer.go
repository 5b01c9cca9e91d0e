// Package extract implements the two-pass attribute extraction pipeline.
//
// Each pass runs every category extractor over the cleaned query in a fixed
// order. An extractor first looks for dictionary phrases in the category's
// trie and falls back to fuzzy matching of single tokens; whatever it
// consumes is hidden from the categories that follow. Both passes are scored
// and a small rule table picks the result.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/fwojciec/furniq"
	"github.com/fwojciec/furniq/match"
	"github.com/fwojciec/furniq/matchr"
	"github.com/fwojciec/furniq/trie"
	"golang.org/x/sync/errgroup"
)

var _ furniq.Analyzer = (*Analyzer)(nil)

// Analyzer extracts furniture attributes from search queries. It is safe for
// concurrent use; dictionaries may be replaced while queries are analyzed.
type Analyzer struct {
	mu       sync.RWMutex
	indexes  map[furniq.Category]*trie.Index
	strategy *match.Strategy
	logger   *slog.Logger
	trace    bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger for debug traces and dictionary warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithStrategy replaces the default matching strategy.
func WithStrategy(s *match.Strategy) Option {
	return func(a *Analyzer) {
		a.strategy = s
	}
}

// WithTrace includes the match details of the selected pass in results.
func WithTrace(enabled bool) Option {
	return func(a *Analyzer) {
		a.trace = enabled
	}
}

// DefaultMatchers returns the exact, Jaro-Winkler, Levenshtein and Soundex
// matchers.
func DefaultMatchers(logger *slog.Logger) []furniq.Matcher {
	return []furniq.Matcher{
		match.NewExact(),
		matchr.NewJaroWinkler(),
		matchr.NewLevenshtein(),
		matchr.NewSoundex(logger),
	}
}

// NewAnalyzer returns an analyzer without dictionaries.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		indexes: make(map[furniq.Category]*trie.Index),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.strategy == nil {
		a.strategy = match.NewStrategy(DefaultMatchers(a.logger), match.WithLogger(a.logger))
	}
	return a
}

// AddDictionary registers or replaces the dictionary of a category and
// rebuilds its trie. Term collisions are logged as warnings.
func (a *Analyzer) AddDictionary(category furniq.Category, dict *furniq.Dictionary) {
	if dict == nil {
		return
	}
	for _, c := range dict.Collisions() {
		a.logger.Warn("dictionary term collision",
			"category", category,
			"term", c.Term,
			"previous", c.Previous,
			"canonical", c.Canonical,
		)
	}

	a.mu.Lock()
	idx, ok := a.indexes[category]
	if !ok {
		a.indexes[category] = trie.NewIndex(dict)
	}
	a.mu.Unlock()

	if ok && !idx.UpdateDictionary(dict) {
		a.logger.Debug("dictionary unchanged", "category", category)
	}
}

// AddMatcher extends the fuzzy matcher set.
func (a *Analyzer) AddMatcher(m furniq.Matcher) {
	a.strategy.AddMatcher(m)
}

// Strategy returns the matching strategy used for fuzzy fallback.
func (a *Analyzer) Strategy() *match.Strategy {
	return a.strategy
}

// RefreshTerms reloads the Brand and ProductName dictionaries from src and
// rebuilds their tries. Existing dictionaries are kept when loading fails.
func (a *Analyzer) RefreshTerms(ctx context.Context, src furniq.TermSource) error {
	categories := []furniq.Category{furniq.CategoryBrand, furniq.CategoryProductName}
	loaded := make([][]*furniq.Term, len(categories))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range categories {
		g.Go(func() error {
			terms, err := src.FindTerms(ctx, furniq.TermFilter{Category: &c})
			if err != nil {
				return fmt.Errorf("failed to load %s terms: %w", c, err)
			}
			loaded[i] = terms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, c := range categories {
		a.AddDictionary(c, furniq.NewTermDictionary(c, loaded[i]))
	}
	return nil
}

// tries returns the current trie of every category.
func (a *Analyzer) tries() map[furniq.Category]*trie.Trie {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[furniq.Category]*trie.Trie, len(a.indexes))
	for c, idx := range a.indexes {
		out[c] = idx.Load()
	}
	return out
}

// Analyze extracts attributes from text. It never fails.
func (a *Analyzer) Analyze(text string) *furniq.AnalysisResult {
	tokens := tokenize(CleanText(text))
	tries := a.tries()

	c := candidates{
		cues: findCues(text),
		a:    a.run(OrderA, tokens, tries),
		b:    a.run(OrderB, tokens, tries),
	}
	c.confA = confidence(c.a, text, c.cues)
	c.confB = confidence(c.b, text, c.cues)

	chosen, rule := selectPass(c)
	a.logger.Debug("pass selected",
		"pass", chosen,
		"rule", rule,
		"confidenceA", c.confA,
		"confidenceB", c.confB,
	)

	if chosen == choiceB {
		return c.b.result(text, c.confB, a.trace)
	}
	return c.a.result(text, c.confA, a.trace)
}

// Stats describes the loaded dictionaries.
func (a *Analyzer) Stats() furniq.AnalyzerStats {
	tries := a.tries()
	stats := furniq.AnalyzerStats{Matchers: a.strategy.Len()}
	for _, c := range furniq.Categories() {
		t, ok := tries[c]
		if !ok || t.Dictionary() == nil {
			continue
		}
		d := t.Dictionary()
		ts := t.Stats()
		stats.Categories = append(stats.Categories, furniq.CategoryStats{
			Category:   c,
			Entries:    len(d.Entries()),
			Terms:      d.Len(),
			Nodes:      ts.Nodes,
			MaxDepth:   ts.MaxDepth,
			Collisions: len(d.Collisions()),
		})
	}
	for algorithm, cfg := range a.strategy.AlgorithmConfigs() {
		stats.Algorithms = append(stats.Algorithms, furniq.AlgorithmStats{
			Algorithm:    algorithm,
			Priority:     int(cfg.Priority),
			Reliability:  cfg.Reliability,
			MinThreshold: cfg.MinThreshold,
		})
	}
	sort.Slice(stats.Algorithms, func(i, j int) bool {
		x, y := stats.Algorithms[i], stats.Algorithms[j]
		if x.Priority != y.Priority {
			return x.Priority < y.Priority
		}
		return x.Algorithm < y.Algorithm
	})
	return stats
}
