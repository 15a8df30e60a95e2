package docindex

import "context"

// ArchiveFetcher retrieves a documentation source tree from a remote archive.
type ArchiveFetcher interface {
	// FetchArchive downloads the archive for version and extracts it under
	// dest. Returns the path of the documentation root inside dest.
	// Returns EFETCH if the archive cannot be retrieved.
	FetchArchive(ctx context.Context, version, dest string) (root string, err error)
}

// UploadTarget identifies where a built index is published.
type UploadTarget struct {
	ProjectID      string `json:"projectId"`
	PackageName    string `json:"packageName"`
	PackageVersion string `json:"packageVersion"`
	FileName       string `json:"fileName"`
}

// Validate returns an error if the target contains invalid fields.
func (t *UploadTarget) Validate() error {
	if t.ProjectID == "" {
		return Errorf(EINVALID, "upload project ID required")
	}
	if t.PackageName == "" {
		return Errorf(EINVALID, "upload package name required")
	}
	if t.PackageVersion == "" {
		return Errorf(EINVALID, "upload package version required")
	}
	if t.FileName == "" {
		return Errorf(EINVALID, "upload file name required")
	}
	return nil
}

// Uploader publishes a built index file to an artifact registry.
type Uploader interface {
	// Upload sends the file at path to target.
	// Returns ENOTFOUND if the file does not exist and EUPLOAD if the
	// registry rejects it.
	Upload(ctx context.Context, path string, target UploadTarget) error
}
