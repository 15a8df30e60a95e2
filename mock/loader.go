package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.DocumentLoader = (*DocumentLoader)(nil)

// DocumentLoader is a mock implementation of docindex.DocumentLoader.
type DocumentLoader struct {
	LoadDocumentsFn func(ctx context.Context, root string) ([]*docindex.Document, error)
}

func (l *DocumentLoader) LoadDocuments(ctx context.Context, root string) ([]*docindex.Document, error) {
	return l.LoadDocumentsFn(ctx, root)
}
