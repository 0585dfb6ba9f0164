package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var whitespace = regexp.MustCompile(`\s+`)

// CondenseSpaces collapses runs of whitespace to single spaces.
func CondenseSpaces(s string) string {
	return whitespace.ReplaceAllString(s, " ")
}

// Truncate keeps the first keep characters of s and appends marker when s is
// longer than keep. Trailing spaces before the marker are dropped.
func Truncate(s string, keep int, marker string) string {
	if keep <= 0 {
		return marker
	}
	if utf8.RuneCountInString(s) <= keep {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:keep]), " \t") + marker
}

// TrimTo limits s to max bytes, cutting on a line boundary when one exists
// and never inside a UTF-8 sequence.
func TrimTo(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	head := s[:max]
	if idx := strings.LastIndex(head, "\n"); idx > 0 {
		head = head[:idx]
	}
	return head + "\n…[diff truncated]"
}
