package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docindex"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	target, err := c.uploadTarget()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	root := c.Root
	if c.Download {
		if c.SourceVersion == "" {
			err := docindex.Errorf(docindex.EINVALID, "--version is required with --download")
			fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
			return err
		}

		dest, err := os.MkdirTemp("", "docindex-src-*")
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		defer os.RemoveAll(dest)

		fmt.Fprintf(deps.Stdout, "Downloading documentation for %s...\n", c.SourceVersion)
		root, err = deps.Archives.FetchArchive(deps.Ctx, c.SourceVersion, dest)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: download failed: %s\n", describeError(err))
			return err
		}
	}

	result, err := deps.Builder.Build(deps.Ctx, root, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents: %d chunks, %d rows (%d empty dropped)\n",
		result.Documents, result.Chunks, result.Rows, result.Dropped)
	fmt.Fprintf(deps.Stdout, "Wrote %s (fingerprint %016x)\n", c.Output, result.Fingerprint)

	if target == nil {
		return nil
	}

	if err := deps.Uploader.Upload(deps.Ctx, c.Output, *target); err != nil {
		// A rejected upload leaves the local index valid.
		if docindex.ErrorCode(err) == docindex.EUPLOAD {
			fmt.Fprintf(deps.Stderr, "warning: upload failed: %s\n", docindex.ErrorMessage(err))
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: upload failed: %s\n", describeError(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Uploaded %s to project %s as %s/%s\n",
		target.FileName, target.ProjectID, target.PackageName, target.PackageVersion)
	return nil
}

// uploadTarget returns the validated upload target, or nil when uploading
// is disabled. It runs before the build so bad coordinates fail fast.
func (c *BuildCmd) uploadTarget() (*docindex.UploadTarget, error) {
	if !c.Upload {
		return nil, nil
	}
	if c.Token == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "--token is required with --upload")
	}

	target := &docindex.UploadTarget{
		ProjectID:      c.ProjectID,
		PackageName:    c.PackageName,
		PackageVersion: c.PackageVersion,
		FileName:       filepath.Base(c.Output),
	}
	if target.PackageVersion == "" {
		target.PackageVersion = c.SourceVersion
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return target, nil
}
