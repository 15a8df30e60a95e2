package sqlite

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docindex"
)

// DefaultSearchLimit is used when Search is called without a positive limit.
const DefaultSearchLimit = 10

// minTermLength is the shortest term the trigram tokenizer can match.
const minTermLength = 3

// Compile-time interface verification.
var _ docindex.SearchService = (*SearchService)(nil)

// SearchService implements docindex.SearchService over an opened index.
type SearchService struct {
	db *DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db}
}

// Search normalizes query the same way index rows are normalized and
// returns rows containing every term, in FTS5 rank order.
// Returns EINVALID if no term is long enough to match.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*docindex.SearchResult, error) {
	expr := matchExpression(query)
	if expr == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "query %q has no term of at least %d characters", query, minTermLength)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT content, metadata, rank
		FROM `+TableName+`
		WHERE `+TableName+` MATCH ?
		ORDER BY rank
		LIMIT ?
	`, expr, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*docindex.SearchResult
	for rows.Next() {
		var r docindex.SearchResult
		var metadata string

		if err := rows.Scan(&r.Content, &metadata, &r.Rank); err != nil {
			return nil, err
		}

		if r.Metadata, err = docindex.UnmarshalMetadata(metadata); err != nil {
			return nil, err
		}

		results = append(results, &r)
	}

	return results, rows.Err()
}

// FindRows returns every row of the index. Row order has no meaning.
func (s *SearchService) FindRows(ctx context.Context) ([]*docindex.IndexRow, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT processed, content, metadata FROM "+TableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*docindex.IndexRow
	for rows.Next() {
		var r docindex.IndexRow
		var metadata string

		if err := rows.Scan(&r.Processed, &r.Content, &metadata); err != nil {
			return nil, err
		}

		if r.Metadata, err = docindex.UnmarshalMetadata(metadata); err != nil {
			return nil, err
		}

		result = append(result, &r)
	}

	return result, rows.Err()
}

// CountRows returns the number of rows in the index.
func (s *SearchService) CountRows(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+TableName).Scan(&n)
	return n, err
}

// matchExpression turns a free-text query into an FTS5 expression: one
// quoted phrase per normalized term, all of which must match.
func matchExpression(query string) string {
	var phrases []string
	for _, term := range strings.Fields(docindex.NormalizeText(query)) {
		if utf8.RuneCountInString(term) < minTermLength {
			continue
		}
		phrases = append(phrases, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(phrases, " ")
}
