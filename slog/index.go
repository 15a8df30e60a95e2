package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Compile-time interface verification.
var (
	_ docindex.IndexWriter   = (*LoggingIndexWriter)(nil)
	_ docindex.SearchService = (*LoggingSearchService)(nil)
)

// LoggingIndexWriter wraps an IndexWriter with logging.
type LoggingIndexWriter struct {
	next   docindex.IndexWriter
	logger *slog.Logger
}

// NewLoggingIndexWriter creates a new LoggingIndexWriter.
func NewLoggingIndexWriter(next docindex.IndexWriter, logger *slog.Logger) *LoggingIndexWriter {
	return &LoggingIndexWriter{next: next, logger: logger}
}

// WriteIndex delegates to the wrapped writer and logs the operation.
func (w *LoggingIndexWriter) WriteIndex(ctx context.Context, path string, rows []*docindex.IndexRow) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write index",
			"path", path,
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteIndex(ctx, path, rows)
}

// LoggingSearchService wraps a SearchService with debug logging.
type LoggingSearchService struct {
	next   docindex.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next docindex.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query.
func (s *LoggingSearchService) Search(ctx context.Context, query string, limit int) (results []*docindex.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"limit", limit,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}
