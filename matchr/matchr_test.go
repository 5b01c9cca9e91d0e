package matchr_test

import (
	"testing"

	"github.com/fwojciec/furniq"
	"github.com/fwojciec/furniq/matchr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canonical = map[string]string{
	"sofa":     "Sofa",
	"couch":    "Sofa",
	"armchair": "Armchair",
}

func TestLevenshtein_FindMatch(t *testing.T) {
	t.Parallel()

	l := matchr.NewLevenshtein()

	t.Run("matches a single edit", func(t *testing.T) {
		t.Parallel()

		m, ok := l.FindMatch("soafa", []string{"couch", "sofa"}, canonical)

		require.True(t, ok)
		assert.Equal(t, "sofa", m.Match)
		assert.Equal(t, "Sofa", m.CanonicalForm)
		assert.Equal(t, furniq.AlgorithmLevenshtein, m.Algorithm)
		assert.InDelta(t, 0.8, m.Score, 1e-9)
	})

	t.Run("skips terms with very different lengths", func(t *testing.T) {
		t.Parallel()

		_, ok := l.FindMatch("arm", []string{"armchair"}, canonical)

		assert.False(t, ok)
	})

	t.Run("rejects distances above the allowance", func(t *testing.T) {
		t.Parallel()

		_, ok := l.FindMatch("sifo", []string{"sofa"}, canonical)

		assert.False(t, ok)
	})

	t.Run("returns the first term that is good enough", func(t *testing.T) {
		t.Parallel()

		m, ok := l.FindMatch("sofas", []string{"sofax", "sofas"}, nil)

		require.True(t, ok)
		assert.Equal(t, "sofax", m.Match)
		assert.Equal(t, "sofax", m.CanonicalForm, "falls back to the term")
	})

	t.Run("ignores case", func(t *testing.T) {
		t.Parallel()

		m, ok := l.FindMatch("SOFFA", []string{"sofa"}, canonical)

		require.True(t, ok)
		assert.Equal(t, "Sofa", m.CanonicalForm)
	})

	t.Run("empty word", func(t *testing.T) {
		t.Parallel()

		_, ok := l.FindMatch("", []string{"sofa"}, canonical)

		assert.False(t, ok)
	})
}

func TestJaroWinkler_FindMatch(t *testing.T) {
	t.Parallel()

	j := matchr.NewJaroWinkler()

	t.Run("picks the most similar term", func(t *testing.T) {
		t.Parallel()

		m, ok := j.FindMatch("Armchir", []string{"sofa", "armchair"}, canonical)

		require.True(t, ok)
		assert.Equal(t, "armchair", m.Match)
		assert.Equal(t, "Armchair", m.CanonicalForm)
		assert.Equal(t, furniq.AlgorithmJaroWinkler, m.Algorithm)
		assert.Greater(t, m.Score, 0.9)
	})

	t.Run("rejects dissimilar words", func(t *testing.T) {
		t.Parallel()

		_, ok := j.FindMatch("lamp", []string{"armchair", "couch"}, canonical)

		assert.False(t, ok)
	})

	t.Run("no terms", func(t *testing.T) {
		t.Parallel()

		_, ok := j.FindMatch("sofa", nil, canonical)

		assert.False(t, ok)
	})
}

func TestSoundex_FindMatch(t *testing.T) {
	t.Parallel()

	s := matchr.NewSoundex(nil)

	t.Run("matches words that sound alike", func(t *testing.T) {
		t.Parallel()

		m, ok := s.FindMatch("soffa", []string{"couch", "sofa"}, canonical)

		require.True(t, ok)
		assert.Equal(t, "sofa", m.Match)
		assert.Equal(t, "Sofa", m.CanonicalForm)
		assert.Equal(t, 1.0, m.Score)
		assert.Equal(t, furniq.AlgorithmSoundex, m.Algorithm)
	})

	t.Run("words without letters never match", func(t *testing.T) {
		t.Parallel()

		_, ok := s.FindMatch("123", []string{"123", "sofa"}, nil)

		assert.False(t, ok)
	})

	t.Run("different codes do not match", func(t *testing.T) {
		t.Parallel()

		_, ok := s.FindMatch("table", []string{"sofa", "couch"}, canonical)

		assert.False(t, ok)
	})
}
