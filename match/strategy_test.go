package match_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/furniq"
	"github.com/fwojciec/furniq/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(alg furniq.Algorithm, match string, score float64) furniq.Matcher {
	return furniq.MatcherFunc(func(word string, _ []string, canonical map[string]string) (furniq.MatchResult, bool) {
		return furniq.MatchResult{Word: word, Match: match, CanonicalForm: canonical[match], Score: score, Algorithm: alg}, true
	})
}

func never() furniq.Matcher {
	return furniq.MatcherFunc(func(string, []string, map[string]string) (furniq.MatchResult, bool) {
		return furniq.MatchResult{}, false
	})
}

var canonical = map[string]string{
	"sofa":     "Sofa",
	"couch":    "Sofa",
	"armchair": "Armchair",
}

var terms = []string{"sofa", "couch", "armchair"}

func TestExact_FindMatch(t *testing.T) {
	t.Parallel()

	e := match.NewExact()

	m, ok := e.FindMatch("Couch", terms, canonical)
	require.True(t, ok)
	assert.Equal(t, "Sofa", m.CanonicalForm)
	assert.Equal(t, "couch", m.Match)
	assert.Equal(t, 1.0, m.Score)
	assert.Equal(t, furniq.AlgorithmExact, m.Algorithm)

	_, ok = e.FindMatch("soafa", terms, canonical)
	assert.False(t, ok)
}

func TestStrategy_FindBestMatch(t *testing.T) {
	t.Parallel()

	t.Run("rejects words shorter than two characters", func(t *testing.T) {
		t.Parallel()

		s := match.NewStrategy([]furniq.Matcher{fixed(furniq.AlgorithmExact, "sofa", 1)})

		_, ok := s.FindBestMatch("s", terms, canonical)
		assert.False(t, ok)
	})

	t.Run("exact match wins over stronger fuzzy scores", func(t *testing.T) {
		t.Parallel()

		s := match.NewStrategy([]furniq.Matcher{
			fixed(furniq.AlgorithmSoundex, "couch", 1),
			fixed(furniq.AlgorithmExact, "sofa", 1),
		})

		m, ok := s.FindBestMatch("sofa", terms, canonical)
		require.True(t, ok)
		assert.Equal(t, furniq.AlgorithmExact, m.Algorithm)
	})

	t.Run("lower priority group only when the higher one fails the floor", func(t *testing.T) {
		t.Parallel()

		// JaroWinkler passes its own threshold but not the 0.85 floor for
		// a five letter word, so Levenshtein gets its turn.
		s := match.NewStrategy([]furniq.Matcher{
			fixed(furniq.AlgorithmJaroWinkler, "couch", 0.82),
			fixed(furniq.AlgorithmLevenshtein, "sofa", 0.86),
		})

		m, ok := s.FindBestMatch("soafa", terms, canonical)
		require.True(t, ok)
		assert.Equal(t, furniq.AlgorithmLevenshtein, m.Algorithm)
		assert.Equal(t, "Sofa", m.CanonicalForm)
	})

	t.Run("drops results below the algorithm threshold", func(t *testing.T) {
		t.Parallel()

		s := match.NewStrategy([]furniq.Matcher{
			fixed(furniq.AlgorithmLevenshtein, "sofa", 0.69),
		})

		_, ok := s.FindBestMatch("zzzz", terms, canonical)
		assert.False(t, ok)
	})

	t.Run("applies the length adaptive floor", func(t *testing.T) {
		t.Parallel()

		s := match.NewStrategy([]furniq.Matcher{
			fixed(furniq.AlgorithmJaroWinkler, "sofa", 0.88),
		})

		_, ok := s.FindBestMatch("sfa", terms, canonical)
		assert.False(t, ok, "three letter words need 0.9")

		_, ok = s.FindBestMatch("soffa", terms, canonical)
		assert.True(t, ok, "five letter words need 0.85")
	})

	t.Run("unknown algorithms join the last group", func(t *testing.T) {
		t.Parallel()

		s := match.NewStrategy([]furniq.Matcher{never()})
		s.AddMatcher(fixed("Custom", "armchair", 0.95))

		m, ok := s.FindBestMatch("armchar", terms, canonical)
		require.True(t, ok)
		assert.Equal(t, furniq.Algorithm("Custom"), m.Algorithm)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("no candidates yields no match", func(t *testing.T) {
		t.Parallel()

		s := match.NewStrategy([]furniq.Matcher{never()})

		_, ok := s.FindBestMatch("sofa", terms, canonical)
		assert.False(t, ok)
	})

	t.Run("logs accepted fuzzy matches at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		s := match.NewStrategy([]furniq.Matcher{fixed(furniq.AlgorithmJaroWinkler, "sofa", 0.95)}, match.WithLogger(logger))

		_, ok := s.FindBestMatch("soafa", terms, canonical)
		require.True(t, ok)
		assert.Contains(t, buf.String(), "fuzzy match accepted")
		assert.Contains(t, buf.String(), "algorithm=JaroWinkler")
	})
}

func TestStrategy_FindTopMatches(t *testing.T) {
	t.Parallel()

	s := match.NewStrategy([]furniq.Matcher{
		fixed(furniq.AlgorithmSoundex, "sofa", 1),
		fixed(furniq.AlgorithmLevenshtein, "couch", 0.8),
		fixed(furniq.AlgorithmJaroWinkler, "armchair", 0.9),
		fixed(furniq.AlgorithmJaroWinkler, "sofa", 0.95),
		fixed(furniq.AlgorithmLevenshtein, "sofa", 0.5),
	})

	t.Run("orders by priority then score", func(t *testing.T) {
		t.Parallel()

		got := s.FindTopMatches("soafa", terms, canonical, 0)

		require.Len(t, got, match.DefaultTopN)
		assert.Equal(t, "sofa", got[0].Match)
		assert.Equal(t, furniq.AlgorithmJaroWinkler, got[0].Algorithm)
		assert.Equal(t, "armchair", got[1].Match)
		assert.Equal(t, furniq.AlgorithmLevenshtein, got[2].Algorithm)
	})

	t.Run("respects n", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, s.FindTopMatches("soafa", terms, canonical, 10), 4)
		assert.Len(t, s.FindTopMatches("soafa", terms, canonical, 1), 1)
	})

	t.Run("short words return nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, s.FindTopMatches("s", terms, canonical, 3))
	})
}

func TestStrategy_AlgorithmConfigs(t *testing.T) {
	t.Parallel()

	s := match.NewStrategy(nil)

	configs := s.AlgorithmConfigs()
	assert.Equal(t, match.PrioritySimilarity, configs[furniq.AlgorithmJaroWinkler].Priority)
	assert.InDelta(t, 0.75, configs[furniq.AlgorithmLevenshtein].Reliability, 1e-9)

	s.UpdateAlgorithmConfig(furniq.AlgorithmSoundex, match.AlgorithmConfig{Priority: match.PriorityPhonetic, Reliability: 0.5, MinThreshold: 0.9})

	assert.InDelta(t, 0.9, s.AlgorithmConfigs()[furniq.AlgorithmSoundex].MinThreshold, 1e-9)
	assert.InDelta(t, 0.5, configs[furniq.AlgorithmSoundex].MinThreshold, 1e-9, "earlier copies are unaffected")
}

func TestFuzzyFloor(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.9, match.FuzzyFloor(3), 1e-9)
	assert.InDelta(t, 0.85, match.FuzzyFloor(5), 1e-9)
	assert.InDelta(t, 0.8, match.FuzzyFloor(8), 1e-9)
	assert.InDelta(t, 0.75, match.FuzzyFloor(12), 1e-9)
}
