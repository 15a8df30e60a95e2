package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docindex"
	main "github.com/fwojciec/docindex/cmd/docindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docindex")
	assert.Contains(t, stdout.String(), "build")
	assert.Contains(t, stdout.String(), "search")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "no command specified")
}

func TestMain_Run_UnknownFlag(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"build", "--bogus"}, &stdout, &stderr)

	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "error:")
}

func TestMain_Run_Version(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "docindex schema version 1\n", stdout.String())
}

func TestMain_Run_BuildAndSearch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "doc")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "user"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "user", "pipelines.md"), []byte(
		"---\nstage: Verify\n---\n# Pipelines\n\nPipelines run jobs.\n\n## Schedules\n\nSchedules trigger pipelines periodically.\n",
	), 0o644))
	output := filepath.Join(dir, "out", "docs.db")

	m := main.NewMain()
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), []string{"build", "-o", output, "--root", root}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "Indexed 1 documents")

	stdout.Reset()
	err = m.Run(context.Background(), []string{"search", output, "schedules"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "## Pipelines > Schedules (doc/user/pipelines.md)")
	assert.Contains(t, stdout.String(), "Schedules trigger pipelines periodically.")
}

func TestMain_Run_BuildEmptyRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), []string{"build", "-o", filepath.Join(root, "docs.db"), "--root", root}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, docindex.ENOINPUT, docindex.ErrorCode(err))
	assert.Contains(t, stderr.String(), "load failed")
	_, statErr := os.Stat(filepath.Join(root, "docs.db"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMain_Run_SearchMissingIndex(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), []string{"search", filepath.Join(t.TempDir(), "missing.db"), "query"}, &stdout, &stderr)

	assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
}
