package docindex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docindex.Errorf(docindex.ENOINPUT, "no markdown files under %q", "doc")

	assert.Equal(t, docindex.ENOINPUT, docindex.ErrorCode(err))
	assert.Equal(t, "no markdown files under \"doc\"", docindex.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("build: %w", docindex.Errorf(docindex.EINDEXWRITE, "disk full"))

	assert.Equal(t, docindex.EINDEXWRITE, docindex.ErrorCode(err))
	assert.Equal(t, "disk full", docindex.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, docindex.EINTERNAL, docindex.ErrorCode(err))
	assert.Equal(t, "Internal error.", docindex.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docindex.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docindex.ErrorMessage(nil))
}
