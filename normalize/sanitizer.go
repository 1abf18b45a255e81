package normalize

import (
	"regexp"
	"strings"
)

var extraWhiteSpace = regexp.MustCompile("[ \t\f\v]+")

// Sanitize
// Cleans up whitespace in raw corpus text: Windows `\r` is dropped, escaped
// `\n` becomes a newline, blank lines are dropped, and every line has its
// runs of blanks collapsed and its ends trimmed.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\\n", "\n")
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = extraWhiteSpace.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
