package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/furniq"
	"github.com/fwojciec/furniq/mock"
	furslog "github.com/fwojciec/furniq/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("logs product type, confidence and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{
			AnalyzeFn: func(text string) *furniq.AnalysisResult {
				r := furniq.NewAnalysisResult(text)
				sofa := "Sofa"
				r.ProductType = &sofa
				r.Features = []string{"Elevated Arms"}
				r.Confidence = 0.88
				return r
			},
		}

		a := furslog.NewLoggingAnalyzer(inner, logger)
		r := a.Analyze("sofa with elevated arms")

		require.NotNil(t, r.ProductType)
		output := buf.String()
		assert.Contains(t, output, "msg=analyze")
		assert.Contains(t, output, "productType=Sofa")
		assert.Contains(t, output, "features=1")
		assert.Contains(t, output, "confidence=0.88")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs empty product type", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Analyzer{AnalyzeFn: furniq.NewAnalysisResult}

		furslog.NewLoggingAnalyzer(inner, logger).Analyze("")

		assert.Contains(t, buf.String(), "productType=\"\"")
	})
}

func TestLoggingAnalyzer_PropagatesPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Analyzer{
		AnalyzeFn: func(string) *furniq.AnalysisResult {
			panic("dictionary corrupted")
		},
	}

	a := furslog.NewLoggingAnalyzer(inner, logger)

	assert.PanicsWithValue(t, "dictionary corrupted", func() { a.Analyze("sofa") })
	assert.Empty(t, buf.String())
}

func TestLoggingTermSource_FindTerms(t *testing.T) {
	t.Parallel()

	t.Run("logs category and count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TermSource{
			FindTermsFn: func(context.Context, furniq.TermFilter) ([]*furniq.Term, error) {
				return []*furniq.Term{{Name: "Bolzan"}, {Name: "Poltrona Frau"}}, nil
			},
		}

		brand := furniq.CategoryBrand
		terms, err := furslog.NewLoggingTermSource(inner, logger).FindTerms(context.Background(), furniq.TermFilter{Category: &brand})

		require.NoError(t, err)
		assert.Len(t, terms, 2)
		output := buf.String()
		assert.Contains(t, output, "find terms")
		assert.Contains(t, output, "category=Brand")
		assert.Contains(t, output, "count=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TermSource{
			FindTermsFn: func(context.Context, furniq.TermFilter) ([]*furniq.Term, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := furslog.NewLoggingTermSource(inner, logger).FindTerms(context.Background(), furniq.TermFilter{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "category=(any)")
		assert.Contains(t, output, "err=\"connection refused\"")
	})
}

func TestLoggingResultWriter_WriteResults(t *testing.T) {
	t.Parallel()

	t.Run("logs written paths", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ResultWriter{
			WriteResultsFn: func(_ context.Context, _ []*furniq.AnalysisResult, basename string) (*furniq.ResultFiles, error) {
				return &furniq.ResultFiles{JSONPath: "out/" + basename + ".json", TextPath: "out/" + basename + ".txt"}, nil
			},
		}

		_, err := furslog.NewLoggingResultWriter(inner, logger).WriteResults(context.Background(), []*furniq.AnalysisResult{{}}, "run")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "results saved")
		assert.Contains(t, output, "count=1")
		assert.Contains(t, output, "json=out/run.json")
		assert.Contains(t, output, "text=out/run.txt")
	})

	t.Run("logs error without paths", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ResultWriter{
			WriteResultsFn: func(context.Context, []*furniq.AnalysisResult, string) (*furniq.ResultFiles, error) {
				return nil, errors.New("disk full")
			},
		}

		_, err := furslog.NewLoggingResultWriter(inner, logger).WriteResults(context.Background(), nil, "")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}
