package docindex

import "strings"

// FormatSearchResults formats search results for display.
// Each result is introduced by its heading breadcrumb and source file.
// Results are separated by blank lines.
func FormatSearchResults(results []*SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		header := r.Metadata.Filename
		if titles := r.Metadata.Headings().Titles(); len(titles) > 0 {
			header = strings.Join(titles, " > ") + " (" + r.Metadata.Filename + ")"
		}
		parts = append(parts, "## "+header+"\n"+r.Content)
	}

	return strings.Join(parts, "\n\n")
}
