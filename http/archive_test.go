package http_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/docindex"
	dochttp "github.com/fwojciec/docindex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildZip returns a zip archive holding files keyed by entry name.
// Names ending in "/" become directory entries.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if content != "" {
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestArchiveFetcher_ArchiveURL(t *testing.T) {
	t.Parallel()

	t.Run("uses project name from base URL", func(t *testing.T) {
		t.Parallel()

		f := dochttp.NewArchiveFetcher(dochttp.WithBaseURL("https://example.com/group/handbook/"))
		assert.Equal(t, "https://example.com/group/handbook/-/archive/v1.2/handbook-v1.2.zip?path=doc", f.ArchiveURL("v1.2"))
	})

	t.Run("explicit project overrides base URL", func(t *testing.T) {
		t.Parallel()

		f := dochttp.NewArchiveFetcher(
			dochttp.WithBaseURL("https://example.com/group/handbook"),
			dochttp.WithProject("docs"),
		)
		assert.Equal(t, "https://example.com/group/handbook/-/archive/main/docs-main.zip?path=doc", f.ArchiveURL("main"))
	})
}

func TestArchiveFetcher_FetchArchive(t *testing.T) {
	t.Parallel()

	t.Run("extracts doc tree without top-level directory", func(t *testing.T) {
		t.Parallel()

		archive := buildZip(t, map[string]string{
			"handbook-v1-doc/":                 "",
			"handbook-v1-doc/doc/index.md":     "# Home\n",
			"handbook-v1-doc/doc/user/auth.md": "# Auth\n",
		})
		var gotPath, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("path")
			w.Header().Set("Content-Type", "application/zip")
			_, _ = w.Write(archive)
		}))
		defer server.Close()

		dest := t.TempDir()
		fetcher := dochttp.NewArchiveFetcher(dochttp.WithBaseURL(server.URL + "/group/handbook"))

		root, err := fetcher.FetchArchive(context.Background(), "v1", dest)

		require.NoError(t, err)
		assert.Equal(t, "/group/handbook/-/archive/v1/handbook-v1.zip", gotPath)
		assert.Equal(t, "doc", gotQuery)
		assert.Equal(t, filepath.Join(dest, "doc"), root)

		data, err := os.ReadFile(filepath.Join(root, "user", "auth.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Auth\n", string(data))
		_, err = os.Stat(filepath.Join(dest, "handbook-v1-doc"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("returns EFETCH for non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := dochttp.NewArchiveFetcher(dochttp.WithBaseURL(server.URL + "/handbook"))

		_, err := fetcher.FetchArchive(context.Background(), "v404", t.TempDir())

		require.Error(t, err)
		assert.Equal(t, docindex.EFETCH, docindex.ErrorCode(err))
		assert.Contains(t, docindex.ErrorMessage(err), "HTTP 404")
	})

	t.Run("returns EFETCH for invalid archive", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not a zip"))
		}))
		defer server.Close()

		fetcher := dochttp.NewArchiveFetcher(dochttp.WithBaseURL(server.URL + "/handbook"))

		_, err := fetcher.FetchArchive(context.Background(), "v1", t.TempDir())

		require.Error(t, err)
		assert.Equal(t, docindex.EFETCH, docindex.ErrorCode(err))
	})

	t.Run("returns EFETCH when archive has no doc directory", func(t *testing.T) {
		t.Parallel()

		archive := buildZip(t, map[string]string{
			"handbook-v1/README.md": "hello",
		})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(archive)
		}))
		defer server.Close()

		fetcher := dochttp.NewArchiveFetcher(dochttp.WithBaseURL(server.URL + "/handbook"))

		_, err := fetcher.FetchArchive(context.Background(), "v1", t.TempDir())

		require.Error(t, err)
		assert.Equal(t, docindex.EFETCH, docindex.ErrorCode(err))
	})

	t.Run("rejects entries escaping destination", func(t *testing.T) {
		t.Parallel()

		archive := buildZip(t, map[string]string{
			"top/../../evil.md": "pwned",
		})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(archive)
		}))
		defer server.Close()

		parent := t.TempDir()
		dest := filepath.Join(parent, "src")
		fetcher := dochttp.NewArchiveFetcher(dochttp.WithBaseURL(server.URL + "/handbook"))

		_, err := fetcher.FetchArchive(context.Background(), "v1", dest)

		require.Error(t, err)
		assert.Equal(t, docindex.EFETCH, docindex.ErrorCode(err))
		_, statErr := os.Stat(filepath.Join(parent, "evil.md"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("returns EINVALID for empty version", func(t *testing.T) {
		t.Parallel()

		fetcher := dochttp.NewArchiveFetcher()

		_, err := fetcher.FetchArchive(context.Background(), "", t.TempDir())

		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		fetcher := dochttp.NewArchiveFetcher(
			dochttp.WithBaseURL(server.URL+"/handbook"),
			dochttp.WithTimeout(10*time.Millisecond),
		)

		_, err := fetcher.FetchArchive(context.Background(), "v1", t.TempDir())
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		fetcher := dochttp.NewArchiveFetcher(dochttp.WithBaseURL(server.URL + "/handbook"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.FetchArchive(ctx, "v1", t.TempDir())
		require.Error(t, err)
	})
}
