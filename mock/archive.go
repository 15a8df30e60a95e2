package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

// Compile-time interface verification.
var (
	_ docindex.ArchiveFetcher = (*ArchiveFetcher)(nil)
	_ docindex.Uploader       = (*Uploader)(nil)
)

// ArchiveFetcher is a mock implementation of docindex.ArchiveFetcher.
type ArchiveFetcher struct {
	FetchArchiveFn func(ctx context.Context, version, dest string) (string, error)
}

func (f *ArchiveFetcher) FetchArchive(ctx context.Context, version, dest string) (string, error) {
	return f.FetchArchiveFn(ctx, version, dest)
}

// Uploader is a mock implementation of docindex.Uploader.
type Uploader struct {
	UploadFn func(ctx context.Context, path string, target docindex.UploadTarget) error
}

func (u *Uploader) Upload(ctx context.Context, path string, target docindex.UploadTarget) error {
	return u.UploadFn(ctx, path, target)
}
