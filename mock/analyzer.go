package mock

import "github.com/fwojciec/furniq"

var (
	_ furniq.Analyzer = (*Analyzer)(nil)
	_ furniq.Matcher  = (*Matcher)(nil)
)

// Analyzer is a mock implementation of furniq.Analyzer.
type Analyzer struct {
	AnalyzeFn func(text string) *furniq.AnalysisResult
}

func (a *Analyzer) Analyze(text string) *furniq.AnalysisResult {
	return a.AnalyzeFn(text)
}

// Matcher is a mock implementation of furniq.Matcher.
type Matcher struct {
	FindMatchFn func(word string, terms []string, canonical map[string]string) (furniq.MatchResult, bool)
}

func (m *Matcher) FindMatch(word string, terms []string, canonical map[string]string) (furniq.MatchResult, bool) {
	return m.FindMatchFn(word, terms, canonical)
}
