// Package goldmark provides a header-based Markdown chunker that uses the
// goldmark parser to tell real headings from look-alikes such as '#' lines
// inside fenced code blocks.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docindex"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Ensure Chunker implements docindex.Chunker at compile time.
var _ docindex.Chunker = (*Chunker)(nil)

// Chunker splits Markdown documents into chunks along heading lines.
type Chunker struct {
	md goldmark.Markdown
}

// NewChunker creates a new Chunker.
func NewChunker() *Chunker {
	return &Chunker{md: goldmark.New()}
}

// heading is a line classified as a chunk boundary.
type heading struct {
	level int
	title string
}

// Chunk splits doc into chunks. A heading line of level 1-5 closes the
// current chunk, which keeps the heading path that was active before the
// line, and opens a new one. Heading lines themselves are not part of any
// chunk; every other line is copied verbatim. The final chunk is always
// emitted, even when empty.
func (c *Chunker) Chunk(doc *docindex.Document) ([]*docindex.Chunk, error) {
	if doc == nil {
		return nil, docindex.Errorf(docindex.ECHUNKING, "document required")
	}

	raw := doc.RawText
	headings := c.headingLines([]byte(raw))

	var (
		chunks []*docindex.Chunk
		path   docindex.HeadingPath
		buf    strings.Builder
	)

	emit := func() {
		chunks = append(chunks, &docindex.Chunk{
			Headings:   path,
			Content:    buf.String(),
			SourcePath: doc.SourcePath,
		})
		buf.Reset()
	}

	for offset := 0; offset < len(raw); {
		next := lineEnd(raw, offset)

		if h, ok := headings[offset]; ok {
			emit()
			path = path.With(h.level, h.title)
		} else {
			buf.WriteString(raw[offset:next])
		}

		offset = next
	}
	emit()

	return chunks, nil
}

// headingLines returns the headings that start a new chunk, keyed by the
// byte offset of their line. Only top-level ATX headings up to
// docindex.MaxHeadingLevel qualify.
func (c *Chunker) headingLines(src []byte) map[int]heading {
	headings := make(map[int]heading)

	root := c.md.Parser().Parse(text.NewReader(src))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > docindex.MaxHeadingLevel || h.Lines().Len() == 0 {
			continue
		}

		start := bytes.LastIndexByte(src[:h.Lines().At(0).Start], '\n') + 1
		line := string(src[start:lineEnd(string(src), start)])

		// Setext headings and empty titles fall through as content.
		level, title, ok := docindex.ParseHeading(line)
		if !ok || level != h.Level {
			continue
		}
		headings[start] = heading{level: level, title: title}
	}

	return headings
}

// lineEnd returns the offset just past the line terminator of the line
// starting at offset, or len(s) for the last line.
func lineEnd(s string, offset int) int {
	if i := strings.IndexByte(s[offset:], '\n'); i >= 0 {
		return offset + i + 1
	}
	return len(s)
}
