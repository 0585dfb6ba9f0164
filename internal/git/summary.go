package git

import (
	"fmt"
	"path"
	"strings"
)

var (
	noisyNames = map[string]bool{
		"go.sum":            true,
		"package-lock.json": true,
		"yarn.lock":         true,
		"pnpm-lock.yaml":    true,
		"Cargo.lock":        true,
		"poetry.lock":       true,
		"composer.lock":     true,
		"Gemfile.lock":      true,
	}
	noisyGlobs = []string{"*.pb.go", "*_generated.go", "zz_generated*", "*.min.js", "*.min.css", "*.map", "*.snap"}
	noisyDirs  = []string{"vendor/", "node_modules/", "dist/"}
)

// SummarizeDiff replaces the hunks of lock files, generated code and bundled
// assets with a one-line note so the prompt budget goes to authored changes.
func SummarizeDiff(diff string) string {
	sections := splitSections(diff)
	if len(sections) == 0 {
		return diff
	}

	var b strings.Builder
	for _, sec := range sections {
		file := sectionPath(sec)
		if file == "" || !IsNoisy(file) {
			b.WriteString(sec)
			continue
		}
		header, _, _ := strings.Cut(sec, "\n")
		fmt.Fprintf(&b, "%s\n[generated file omitted: %d lines changed]\n", header, changedLines(sec))
	}
	return b.String()
}

// IsNoisy reports whether file is a dependency lock, generated or vendored file.
func IsNoisy(file string) bool {
	base := path.Base(file)
	if noisyNames[base] {
		return true
	}
	for _, g := range noisyGlobs {
		if ok, _ := path.Match(g, base); ok {
			return true
		}
	}
	for _, d := range noisyDirs {
		if strings.HasPrefix(file, d) || strings.Contains(file, "/"+d) {
			return true
		}
	}
	return false
}

// splitSections cuts a unified diff at each "diff --git" header. Text before
// the first header, if any, is kept as its own section.
func splitSections(diff string) []string {
	var out []string
	start := 0
	for {
		j := strings.Index(diff[start:], "\ndiff --git ")
		if j < 0 {
			break
		}
		cut := start + j + 1
		out = append(out, diff[start:cut])
		start = cut
	}
	if start < len(diff) {
		out = append(out, diff[start:])
	}
	return out
}

func sectionPath(sec string) string {
	header, _, _ := strings.Cut(sec, "\n")
	if !strings.HasPrefix(header, "diff --git ") {
		return ""
	}
	if i := strings.LastIndex(header, " b/"); i >= 0 {
		return header[i+3:]
	}
	return ""
}

func changedLines(sec string) int {
	n := 0
	for _, line := range strings.Split(sec, "\n") {
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			n++
		}
	}
	return n
}
