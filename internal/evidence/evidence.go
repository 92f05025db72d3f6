package evidence

import (
	"regexp"
	"strings"
)

// urlRe matches the first http(s) token on a line, up to the next whitespace.
var urlRe = regexp.MustCompile(`(?i)https?://\S+`)

// Extract parses free-form multi-line text into a deduplicated list of URLs,
// preserving first-seen order. Each non-empty line contributes at most its
// first http(s) token; lines without one contribute nothing. No validation
// beyond the regex is performed, so malformed matches pass through unchanged.
func Extract(text string) []string {
	var urls []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		match := urlRe.FindString(line)
		if match == "" {
			continue
		}
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		urls = append(urls, match)
	}
	return urls
}
