// Package build runs the indexing pipeline: it loads documents, chunks and
// normalizes them concurrently, then writes the index in one atomic step.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docindex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents processed in parallel when
// Builder.Concurrency is not set.
const DefaultConcurrency = 4

// Pipeline stages reported in Error.
const (
	StageLoad  = "load"
	StageChunk = "chunk"
	StageWrite = "write"
)

// Error reports the pipeline stage that failed.
type Error struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Builder orchestrates a full index build.
type Builder struct {
	Loader      docindex.DocumentLoader
	Chunker     docindex.Chunker
	Index       docindex.IndexWriter
	Logger      *slog.Logger
	Concurrency int
}

// Result holds the outcome of a build.
type Result struct {
	Documents int
	Chunks    int
	Rows      int
	Dropped   int

	// Fingerprint identifies the written row set independently of row
	// order. Builds of an unchanged tree report the same fingerprint.
	Fingerprint uint64
}

// documentResult holds the rows derived from a single document.
type documentResult struct {
	chunks  int
	dropped int
	rows    []*docindex.IndexRow
}

// Build indexes every document under root and writes the index to output.
// Any failure aborts the build before the index is written, leaving a
// previous index at output untouched.
func (b *Builder) Build(ctx context.Context, root, output string) (*Result, error) {
	begin := time.Now()
	logger := b.logger()

	docs, err := b.Loader.LoadDocuments(ctx, root)
	if err != nil {
		return nil, &Error{Stage: StageLoad, Err: err}
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Documents are independent; each goroutine owns one slot.
	results := make([]documentResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			chunks, err := b.Chunker.Chunk(doc)
			if err != nil {
				if docindex.ErrorCode(err) == docindex.EINTERNAL {
					err = docindex.Errorf(docindex.ECHUNKING, "cannot chunk %s: %v", doc.SourcePath, err)
				}
				return err
			}

			rows, dropped := docindex.BuildRows(chunks)
			results[i] = documentResult{chunks: len(chunks), dropped: dropped, rows: rows}

			logger.Debug("chunked document",
				"path", doc.SourcePath,
				"chunks", len(chunks),
				"rows", len(rows),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &Error{Stage: StageChunk, Err: err}
	}

	result := &Result{Documents: len(docs)}
	var rows []*docindex.IndexRow
	for _, r := range results {
		result.Chunks += r.chunks
		result.Dropped += r.dropped
		rows = append(rows, r.rows...)
	}
	result.Rows = len(rows)

	if result.Fingerprint, err = Fingerprint(rows); err != nil {
		return nil, &Error{Stage: StageWrite, Err: err}
	}

	if err := b.Index.WriteIndex(ctx, output, rows); err != nil {
		return nil, &Error{Stage: StageWrite, Err: err}
	}

	logger.Info("build complete",
		"output", output,
		"documents", result.Documents,
		"chunks", result.Chunks,
		"rows", result.Rows,
		"dropped", result.Dropped,
		"fingerprint", fmt.Sprintf("%016x", result.Fingerprint),
		"duration", time.Since(begin),
	)

	return result, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// Fingerprint returns an order-independent digest of rows. Each row is
// hashed over its processed text, content and serialized metadata, and
// the row hashes are summed.
func Fingerprint(rows []*docindex.IndexRow) (uint64, error) {
	var sum uint64
	d := xxhash.New()
	for _, row := range rows {
		metadata, err := row.Metadata.Marshal()
		if err != nil {
			return 0, err
		}

		d.Reset()
		_, _ = d.WriteString(row.Processed)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(row.Content)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(metadata)
		sum += d.Sum64()
	}
	return sum, nil
}
