package docindex

import (
	"context"
	"encoding/json"
)

// SchemaVersion identifies the on-disk index format. Readers must reject
// indexes written with a different version.
const SchemaVersion = 1

// Metadata describes where an index row came from. Heading fields are
// omitted from the serialized form when the level is absent.
type Metadata struct {
	Header1  string `json:"Header1,omitempty"`
	Header2  string `json:"Header2,omitempty"`
	Header3  string `json:"Header3,omitempty"`
	Header4  string `json:"Header4,omitempty"`
	Header5  string `json:"Header5,omitempty"`
	Filename string `json:"filename"`
}

// NewMetadata returns the metadata record for a chunk.
func NewMetadata(c *Chunk) Metadata {
	return Metadata{
		Header1:  c.Headings.Title(1),
		Header2:  c.Headings.Title(2),
		Header3:  c.Headings.Title(3),
		Header4:  c.Headings.Title(4),
		Header5:  c.Headings.Title(5),
		Filename: c.SourcePath,
	}
}

// Headings returns the heading titles of the record as a HeadingPath.
func (m Metadata) Headings() HeadingPath {
	return HeadingPath{m.Header1, m.Header2, m.Header3, m.Header4, m.Header5}
}

// Marshal serializes the metadata. Key order is fixed.
func (m Metadata) Marshal() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalMetadata parses serialized metadata.
func UnmarshalMetadata(s string) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return Metadata{}, Errorf(EINVALID, "malformed row metadata: %v", err)
	}
	return m, nil
}

// IndexRow is a single searchable entry of the index.
type IndexRow struct {
	// Normalized search key.
	Processed string `json:"processed"`

	// Verbatim chunk text.
	Content string `json:"content"`

	Metadata Metadata `json:"metadata"`
}

// BuildRows normalizes chunks into index rows. Chunks that normalize to the
// empty string are dropped and counted.
func BuildRows(chunks []*Chunk) (rows []*IndexRow, dropped int) {
	rows = make([]*IndexRow, 0, len(chunks))
	for _, c := range chunks {
		processed := Normalize(c)
		if processed == "" {
			dropped++
			continue
		}
		rows = append(rows, &IndexRow{
			Processed: processed,
			Content:   c.Content,
			Metadata:  NewMetadata(c),
		})
	}
	return rows, dropped
}

// IndexWriter persists a complete index.
type IndexWriter interface {
	// WriteIndex replaces the index at path with rows. The write is atomic:
	// on failure any previous index at path is left untouched and no
	// partial file remains. Returns EINDEXWRITE on I/O failure.
	WriteIndex(ctx context.Context, path string, rows []*IndexRow) error
}

// SearchService queries a persisted index.
type SearchService interface {
	// Search returns rows matching query, best match first.
	Search(ctx context.Context, query string, limit int) ([]*SearchResult, error)
}

// SearchResult represents a matching index row.
type SearchResult struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
	Rank     float64  `json:"rank"`
}
