package docindex

import "context"

// Document represents a raw documentation file read from disk.
type Document struct {
	// Slash-separated path of the file, relative to the parent of the
	// loader root (e.g. "doc/user/index.md").
	SourcePath string `json:"sourcePath"`
	RawText    string `json:"rawText"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourcePath == "" {
		return Errorf(EINVALID, "document source path required")
	}
	return nil
}

// DocumentLoader reads documentation files from a directory tree.
type DocumentLoader interface {
	// LoadDocuments recursively reads every documentation file under root.
	// Returns ENOINPUT if no files match and ENOTFOUND if root does not exist.
	LoadDocuments(ctx context.Context, root string) ([]*Document, error)
}
