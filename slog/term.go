package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/furniq"
)

// Ensure LoggingTermSource implements furniq.TermSource.
var _ furniq.TermSource = (*LoggingTermSource)(nil)

// LoggingTermSource wraps a TermSource with logging.
type LoggingTermSource struct {
	next   furniq.TermSource
	logger *slog.Logger
}

// NewLoggingTermSource creates a new LoggingTermSource.
func NewLoggingTermSource(next furniq.TermSource, logger *slog.Logger) *LoggingTermSource {
	return &LoggingTermSource{next: next, logger: logger}
}

// FindTerms delegates to the wrapped source and logs the operation.
func (s *LoggingTermSource) FindTerms(ctx context.Context, filter furniq.TermFilter) (terms []*furniq.Term, err error) {
	defer func(begin time.Time) {
		category := "(any)"
		if filter.Category != nil {
			category = filter.Category.String()
		}
		s.logger.Info("find terms",
			"category", category,
			"count", len(terms),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindTerms(ctx, filter)
}
