package docindex

import (
	"regexp"
	"strings"
)

var (
	// ATX heading: up to three spaces of indentation, one to six '#', then
	// whitespace or end of line.
	atxHeadingRe = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?[ \t]*$`)

	// Optional closing sequence of '#' characters.
	atxClosingRe = regexp.MustCompile(`(?:^|[ \t]+)#+$`)
)

// ParseHeading classifies a single line as an ATX heading. It returns the
// heading level (1-6) and its title with any closing '#' sequence removed.
// Lines with an empty title are not headings.
func ParseHeading(line string) (level int, title string, ok bool) {
	line = strings.TrimRight(line, "\r\n")

	m := atxHeadingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}

	title = strings.TrimSpace(atxClosingRe.ReplaceAllString(m[2], ""))
	if title == "" {
		return 0, "", false
	}
	return len(m[1]), title, true
}
