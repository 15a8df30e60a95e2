package mock

import "github.com/fwojciec/docindex"

var _ docindex.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of docindex.Chunker.
type Chunker struct {
	ChunkFn func(doc *docindex.Document) ([]*docindex.Chunk, error)
}

func (c *Chunker) Chunk(doc *docindex.Document) ([]*docindex.Chunk, error) {
	return c.ChunkFn(doc)
}
