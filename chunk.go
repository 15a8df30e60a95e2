package docindex

// MaxHeadingLevel is the deepest heading level that starts a new chunk.
// Deeper headings are kept as plain content.
const MaxHeadingLevel = 5

// HeadingPath holds the heading titles active at a point in a document,
// indexed by level-1. An empty string means the level is absent.
type HeadingPath [MaxHeadingLevel]string

// Title returns the title at level (1-based), or "" if absent or out of range.
func (p HeadingPath) Title(level int) string {
	if level < 1 || level > MaxHeadingLevel {
		return ""
	}
	return p[level-1]
}

// With returns a copy of the path with level set to title and every
// deeper level cleared.
func (p HeadingPath) With(level int, title string) HeadingPath {
	if level < 1 || level > MaxHeadingLevel {
		return p
	}
	for i := level; i < MaxHeadingLevel; i++ {
		p[i] = ""
	}
	p[level-1] = title
	return p
}

// Titles returns the present titles in level order.
func (p HeadingPath) Titles() []string {
	var titles []string
	for _, t := range p {
		if t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// IsEmpty reports whether no level is present.
func (p HeadingPath) IsEmpty() bool {
	return p == HeadingPath{}
}

// Chunk is a contiguous span of document text together with the heading
// hierarchy active where it starts.
type Chunk struct {
	Headings   HeadingPath `json:"headings"`
	Content    string      `json:"content"`
	SourcePath string      `json:"sourcePath"`
}

// Chunker splits a document into header-scoped chunks.
type Chunker interface {
	// Chunk returns the ordered chunks of doc. Concatenating their Content
	// reproduces the document text with heading lines removed.
	Chunk(doc *Document) ([]*Chunk, error)
}
