package commit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const codeFence = "```"

var (
	// embeddedBullet catches list fragments glued into one subject line,
	// e.g. "add parser • fix lexer".
	embeddedBullet = regexp.MustCompile(`\s[•◦▪*]\s+`)
	// A single " - " is a common subject separator, two or more read as a list.
	embeddedDash = regexp.MustCompile(`\s-\s+`)
)

// Valid reports whether a cleaned candidate has the shape required by mode.
func Valid(candidate string, mode Mode) bool {
	if strings.TrimSpace(candidate) == "" || strings.Contains(candidate, codeFence) {
		return false
	}
	if mode == SubjectBody {
		return validSubjectBody(candidate)
	}
	return validSingleLine(candidate)
}

func validSingleLine(c string) bool {
	if strings.ContainsAny(c, "\r\n") {
		return false
	}
	if embeddedBullet.MatchString(c) {
		return false
	}
	return len(embeddedDash.FindAllStringIndex(c, -1)) < 2
}

func validSubjectBody(c string) bool {
	lines := strings.Split(c, "\n")
	if strings.TrimSpace(lines[0]) == "" {
		return false
	}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

// FirstLine returns the subject of a candidate.
func FirstLine(c string) string {
	line, _, _ := strings.Cut(c, "\n")
	return line
}

// ReplaceFirstLine swaps the subject of c for line, keeping the rest intact.
func ReplaceFirstLine(c, line string) string {
	_, rest, ok := strings.Cut(c, "\n")
	if !ok {
		return line
	}
	return line + "\n" + rest
}

// Length counts characters, not bytes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
