// Package slog provides logging decorators for docindex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingLoader implements docindex.DocumentLoader.
var _ docindex.DocumentLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps a DocumentLoader with logging.
type LoggingLoader struct {
	next   docindex.DocumentLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next docindex.DocumentLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// LoadDocuments delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) LoadDocuments(ctx context.Context, root string) (docs []*docindex.Document, err error) {
	defer func(begin time.Time) {
		var bytes int
		for _, d := range docs {
			bytes += len(d.RawText)
		}
		l.logger.Info("load documents",
			"root", root,
			"count", len(docs),
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadDocuments(ctx, root)
}
