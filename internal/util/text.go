package util

import (
	"net/url"
	"unicode/utf8"
)

// Host returns the host component of rawURL, or "" when the URL cannot be
// parsed or has no host.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Excerpt truncates s to at most n bytes, appending an ellipsis marker when
// anything was cut. The cut backs off to the previous rune boundary so the
// excerpt stays valid UTF-8. Used to bound raw bodies kept for diagnostics.
func Excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
