package docindex

import (
	"strings"
	"unicode"
)

const preambleDelimiter = "---"

// StripPreamble removes a front matter block delimited by two lines
// consisting solely of "---". Everything from the first delimiter line
// through the line terminator of the second is removed; text before the
// first delimiter is kept. Without a closing delimiter content is returned
// unchanged.
func StripPreamble(content string) string {
	start := -1
	for offset := 0; offset < len(content); {
		next := len(content)
		if i := strings.IndexByte(content[offset:], '\n'); i >= 0 {
			next = offset + i + 1
		}

		line := strings.TrimSuffix(strings.TrimSuffix(content[offset:next], "\n"), "\r")
		if line == preambleDelimiter {
			if start < 0 {
				start = offset
			} else {
				return content[:start] + content[next:]
			}
		}
		offset = next
	}
	return content
}

// Normalize returns the search key for a chunk: its heading titles followed
// by the body with the preamble removed, lowercased and stripped of
// punctuation. An empty result means the chunk should not be indexed.
func Normalize(c *Chunk) string {
	body := StripPreamble(c.Content)
	if body == "" {
		return ""
	}
	return NormalizeText(strings.Join(c.Headings.Titles(), "") + " " + body)
}

// NormalizeText lowercases s and removes every rune that is neither a word
// character (letter, digit, underscore) nor whitespace.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
