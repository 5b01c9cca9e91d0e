// Package slog provides log/slog decorators for furniq services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/furniq"
)

// Ensure LoggingAnalyzer implements furniq.Analyzer.
var _ furniq.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging of every query.
type LoggingAnalyzer struct {
	next   furniq.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next furniq.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the outcome.
func (a *LoggingAnalyzer) Analyze(text string) (result *furniq.AnalysisResult) {
	defer func(begin time.Time) {
		// A panicking analyzer leaves result nil; let the panic propagate.
		if result == nil {
			return
		}
		productType := ""
		if result.ProductType != nil {
			productType = *result.ProductType
		}
		a.logger.Info("analyze",
			"text", text,
			"productType", productType,
			"features", len(result.Features),
			"confidence", result.Confidence,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return a.next.Analyze(text)
}
