// Package slog provides logging decorators for docsearch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsearch"
)

// Ensure LoggingSearcher implements docsearch.Searcher.
var _ docsearch.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with query logging.
type LoggingSearcher struct {
	next   docsearch.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docsearch.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Resolve delegates to the wrapped searcher, logging the query, result
// count and duration.
func (s *LoggingSearcher) Resolve(ctx context.Context, query string, offset, topK int) ([]docsearch.Result, error) {
	begin := time.Now()
	results, err := s.next.Resolve(ctx, query, offset, topK)
	if err != nil {
		s.logger.Error("search",
			"query", query,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	s.logger.Info("search",
		"query", query,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}
