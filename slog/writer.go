package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/furniq"
)

// Ensure LoggingResultWriter implements furniq.ResultWriter.
var _ furniq.ResultWriter = (*LoggingResultWriter)(nil)

// LoggingResultWriter wraps a ResultWriter with logging.
type LoggingResultWriter struct {
	next   furniq.ResultWriter
	logger *slog.Logger
}

// NewLoggingResultWriter creates a new LoggingResultWriter.
func NewLoggingResultWriter(next furniq.ResultWriter, logger *slog.Logger) *LoggingResultWriter {
	return &LoggingResultWriter{next: next, logger: logger}
}

// WriteResults delegates to the wrapped writer and logs where results went.
func (w *LoggingResultWriter) WriteResults(ctx context.Context, results []*furniq.AnalysisResult, basename string) (files *furniq.ResultFiles, err error) {
	defer func(begin time.Time) {
		var jsonPath, textPath string
		if files != nil {
			jsonPath, textPath = files.JSONPath, files.TextPath
		}
		w.logger.Info("results saved",
			"count", len(results),
			"json", jsonPath,
			"text", textPath,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteResults(ctx, results, basename)
}
