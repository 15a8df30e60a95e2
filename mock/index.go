package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

// Compile-time interface verification.
var (
	_ docindex.IndexWriter   = (*IndexWriter)(nil)
	_ docindex.SearchService = (*SearchService)(nil)
)

// IndexWriter is a mock implementation of docindex.IndexWriter.
type IndexWriter struct {
	WriteIndexFn func(ctx context.Context, path string, rows []*docindex.IndexRow) error
}

func (w *IndexWriter) WriteIndex(ctx context.Context, path string, rows []*docindex.IndexRow) error {
	return w.WriteIndexFn(ctx, path, rows)
}

// SearchService is a mock implementation of docindex.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]*docindex.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*docindex.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}
