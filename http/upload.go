package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/docindex"
)

// DefaultAPIURL is the registry API the index is published to.
const DefaultAPIURL = "https://gitlab.com/api/v4"

// DefaultUploadTimeout bounds a single upload request.
const DefaultUploadTimeout = 2 * time.Minute

// TokenHeader carries the registry access token.
const TokenHeader = "PRIVATE-TOKEN"

// Ensure Uploader implements docindex.Uploader at compile time.
var _ docindex.Uploader = (*Uploader)(nil)

// Uploader publishes files to a generic package registry with an
// authenticated PUT. Uploads are not retried.
type Uploader struct {
	client *http.Client
	apiURL string
	token  string
}

// NewUploader creates a new Uploader for the registry at apiURL.
func NewUploader(apiURL, token string, timeout time.Duration) *Uploader {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	return &Uploader{
		client: &http.Client{Timeout: timeout},
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
	}
}

// PackageURL returns the generic package file URL for target.
func (u *Uploader) PackageURL(target docindex.UploadTarget) string {
	return fmt.Sprintf("%s/projects/%s/packages/generic/%s/%s/%s",
		u.apiURL,
		url.PathEscape(target.ProjectID),
		url.PathEscape(target.PackageName),
		url.PathEscape(target.PackageVersion),
		url.PathEscape(target.FileName),
	)
}

// Upload sends the file at path to target.
func (u *Uploader) Upload(ctx context.Context, path string, target docindex.UploadTarget) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if u.token == "" {
		return docindex.Errorf(docindex.EINVALID, "upload token required")
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return docindex.Errorf(docindex.ENOTFOUND, "index %q does not exist", path)
	} else if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	endpoint := u.PackageURL(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, f)
	if err != nil {
		return err
	}
	req.ContentLength = info.Size()
	req.Header.Set(TokenHeader, u.token)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := u.client.Do(req)
	if err != nil {
		return docindex.Errorf(docindex.EUPLOAD, "upload to %s: %v", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return docindex.Errorf(docindex.EUPLOAD, "HTTP %d for %s: %s", resp.StatusCode, endpoint, msg)
}
