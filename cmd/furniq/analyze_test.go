package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/furniq"
	main "github.com/fwojciec/furniq/cmd/furniq"
	"github.com/fwojciec/furniq/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Parallel()

	analyzer := &mock.Analyzer{
		AnalyzeFn: func(text string) *furniq.AnalysisResult {
			r := furniq.NewAnalysisResult(text)
			r.Features = []string{"Tufted Back"}
			return r
		},
	}

	t.Run("prints text report", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Analyzer: analyzer,
		}

		require.NoError(t, (&main.AnalyzeCmd{Texts: []string{"tufted", "tufted back"}}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "==== Result #1 ====")
		assert.Contains(t, out, "==== Result #2 ====")
		assert.Contains(t, out, "Features: Tufted Back")
		assert.Contains(t, out, "Product Type: Unknown")
	})

	t.Run("prints json", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Analyzer: analyzer,
		}

		require.NoError(t, (&main.AnalyzeCmd{Texts: []string{"tufted"}, JSON: true}).Run(deps))

		var got []furniq.AnalysisResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, []string{"Tufted Back"}, got[0].Features)
	})
}
