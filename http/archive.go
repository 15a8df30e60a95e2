// Package http provides the network collaborators of a docindex build:
// downloading the documentation source archive and publishing the built
// index to a generic package registry.
package http

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docindex"
)

// DefaultFetchTimeout bounds the whole archive download. Documentation
// archives are large, so this is far longer than a page fetch.
const DefaultFetchTimeout = 5 * time.Minute

// DefaultBaseURL is the repository the documentation archive is fetched from.
const DefaultBaseURL = "https://gitlab.com/gitlab-org/gitlab"

// DocPath is the subtree requested from the archive endpoint.
const DocPath = "doc"

// Ensure ArchiveFetcher implements docindex.ArchiveFetcher at compile time.
var _ docindex.ArchiveFetcher = (*ArchiveFetcher)(nil)

// ArchiveFetcher downloads a repository archive restricted to the
// documentation subtree and extracts it to a local directory.
type ArchiveFetcher struct {
	client  *http.Client
	timeout time.Duration
	baseURL string
	project string
}

// Option configures an ArchiveFetcher.
type Option func(*ArchiveFetcher)

// WithTimeout sets the timeout for the archive download.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *ArchiveFetcher) {
		f.timeout = d
	}
}

// WithBaseURL sets the repository URL archives are requested from.
func WithBaseURL(u string) Option {
	return func(f *ArchiveFetcher) {
		f.baseURL = strings.TrimRight(u, "/")
	}
}

// WithProject sets the project name used in the archive file name.
// Defaults to the last path segment of the base URL.
func WithProject(name string) Option {
	return func(f *ArchiveFetcher) {
		f.project = name
	}
}

// NewArchiveFetcher creates a new ArchiveFetcher.
func NewArchiveFetcher(opts ...Option) *ArchiveFetcher {
	f := &ArchiveFetcher{
		timeout: DefaultFetchTimeout,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.project == "" {
		f.project = f.baseURL[strings.LastIndexByte(f.baseURL, '/')+1:]
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// ArchiveURL returns the download URL for version.
func (f *ArchiveFetcher) ArchiveURL(version string) string {
	v := url.PathEscape(version)
	return fmt.Sprintf("%s/-/archive/%s/%s-%s.zip?path=%s", f.baseURL, v, f.project, v, DocPath)
}

// FetchArchive downloads the archive for version and extracts it under dest,
// dropping the archive's top-level directory. Returns dest/doc.
func (f *ArchiveFetcher) FetchArchive(ctx context.Context, version, dest string) (string, error) {
	if version == "" {
		return "", docindex.Errorf(docindex.EINVALID, "archive version required")
	}

	tmp, err := os.CreateTemp("", "docindex-*.zip")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := f.download(ctx, f.ArchiveURL(version), tmp)
	if err != nil {
		return "", err
	}

	zr, err := zip.NewReader(tmp, size)
	if err != nil {
		return "", docindex.Errorf(docindex.EFETCH, "invalid archive for %s: %v", version, err)
	}
	if err := extract(ctx, zr, dest); err != nil {
		return "", err
	}

	root := filepath.Join(dest, DocPath)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return "", docindex.Errorf(docindex.EFETCH, "archive for %s contains no %s directory", version, DocPath)
	}
	return root, nil
}

// download streams the response body for u into w and returns its size.
func (f *ArchiveFetcher) download(ctx context.Context, u string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, docindex.Errorf(docindex.EFETCH, "download %s: %v", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, docindex.Errorf(docindex.EFETCH, "HTTP %d for %s", resp.StatusCode, u)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return 0, docindex.Errorf(docindex.EFETCH, "download %s: %v", u, err)
	}
	return n, nil
}

// extract writes every regular file of zr below dest, stripping the first
// path component. Entries that would land outside dest are rejected.
func extract(ctx context.Context, zr *zip.Reader, dest string) error {
	dest, err := filepath.Abs(dest)
	if err != nil {
		return err
	}

	for _, zf := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, rel, ok := strings.Cut(zf.Name, "/")
		if !ok || rel == "" {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(rel))
		if r, err := filepath.Rel(dest, target); err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			return docindex.Errorf(docindex.EFETCH, "archive entry %q escapes destination", zf.Name)
		}

		mode := zf.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := extractFile(zf, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func extractFile(zf *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := zf.Open()
	if err != nil {
		return docindex.Errorf(docindex.EFETCH, "read archive entry %q: %v", zf.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return docindex.Errorf(docindex.EFETCH, "read archive entry %q: %v", zf.Name, err)
	}
	return dst.Close()
}
