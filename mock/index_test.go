package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where IndexWriter is expected
	var _ docindex.IndexWriter = &mock.IndexWriter{}
}

func TestIndexWriter_WriteIndex(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteIndexFn", func(t *testing.T) {
		t.Parallel()

		var calledPath string
		var calledRows []*docindex.IndexRow
		w := &mock.IndexWriter{
			WriteIndexFn: func(_ context.Context, path string, rows []*docindex.IndexRow) error {
				calledPath = path
				calledRows = rows
				return nil
			},
		}

		rows := []*docindex.IndexRow{{Processed: "a", Content: "A"}}

		err := w.WriteIndex(context.Background(), "docs.db", rows)

		require.NoError(t, err)
		assert.Equal(t, "docs.db", calledPath)
		assert.Equal(t, rows, calledRows)
	})
}
