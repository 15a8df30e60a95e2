// Package fs provides file-based loading of documentation sources.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docindex"
)

// DefaultExtensions are the file extensions loaded when none are configured.
var DefaultExtensions = []string{".md"}

// Ensure Loader implements docindex.DocumentLoader at compile time.
var _ docindex.DocumentLoader = (*Loader)(nil)

// Loader reads documentation files from a directory tree.
type Loader struct {
	extensions []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtensions sets the file extensions to load (e.g. ".md", ".markdown").
// Matching is case-insensitive.
func WithExtensions(exts ...string) Option {
	return func(l *Loader) {
		l.extensions = exts
	}
}

// NewLoader creates a new Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{extensions: DefaultExtensions}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadDocuments walks root in lexical order and reads every matching file.
// Source paths are slash-separated and relative to the parent of root, so
// a root named "doc" produces paths starting with "doc/".
func (l *Loader) LoadDocuments(ctx context.Context, root string) ([]*docindex.Document, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "documentation root %q does not exist", root)
	} else if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, docindex.Errorf(docindex.EINVALID, "documentation root %q is not a directory", root)
	}

	base := filepath.Dir(abs)

	var docs []*docindex.Document
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || !l.match(path) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		docs = append(docs, &docindex.Document{
			SourcePath: filepath.ToSlash(rel),
			RawText:    string(raw),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, docindex.Errorf(docindex.ENOINPUT, "no documentation files found under %q", root)
	}

	return docs, nil
}

func (l *Loader) match(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range l.extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
