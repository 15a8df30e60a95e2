package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Compile-time interface verification.
var (
	_ docindex.ArchiveFetcher = (*LoggingArchiveFetcher)(nil)
	_ docindex.Uploader       = (*LoggingUploader)(nil)
)

// LoggingArchiveFetcher wraps an ArchiveFetcher with logging.
type LoggingArchiveFetcher struct {
	next   docindex.ArchiveFetcher
	logger *slog.Logger
}

// NewLoggingArchiveFetcher creates a new LoggingArchiveFetcher.
func NewLoggingArchiveFetcher(next docindex.ArchiveFetcher, logger *slog.Logger) *LoggingArchiveFetcher {
	return &LoggingArchiveFetcher{next: next, logger: logger}
}

// FetchArchive delegates to the wrapped fetcher and logs the operation.
func (f *LoggingArchiveFetcher) FetchArchive(ctx context.Context, version, dest string) (root string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch archive",
			"version", version,
			"root", root,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchArchive(ctx, version, dest)
}

// LoggingUploader wraps an Uploader with logging.
type LoggingUploader struct {
	next   docindex.Uploader
	logger *slog.Logger
}

// NewLoggingUploader creates a new LoggingUploader.
func NewLoggingUploader(next docindex.Uploader, logger *slog.Logger) *LoggingUploader {
	return &LoggingUploader{next: next, logger: logger}
}

// Upload delegates to the wrapped uploader and logs the operation.
func (u *LoggingUploader) Upload(ctx context.Context, path string, target docindex.UploadTarget) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		u.logger.Log(ctx, level, "upload index",
			"path", path,
			"project", target.ProjectID,
			"package", target.PackageName,
			"version", target.PackageVersion,
			"file", target.FileName,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return u.next.Upload(ctx, path, target)
}
