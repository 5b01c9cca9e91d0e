package mock

import (
	"context"

	"github.com/fwojciec/furniq"
)

var _ furniq.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of furniq.ResultWriter.
type ResultWriter struct {
	WriteResultsFn func(ctx context.Context, results []*furniq.AnalysisResult, basename string) (*furniq.ResultFiles, error)
}

func (w *ResultWriter) WriteResults(ctx context.Context, results []*furniq.AnalysisResult, basename string) (*furniq.ResultFiles, error) {
	return w.WriteResultsFn(ctx, results, basename)
}
