package commit

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// preferredListKey is the field name the candidate schema asks the model for.
const preferredListKey = "messages"

var (
	reasoningBlock = regexp.MustCompile(`(?is)<think(?:ing)?\s*>.*?</think(?:ing)?\s*>`)
	reasoningTag   = regexp.MustCompile(`(?i)</?think(?:ing)?\s*>`)
	fencedBlock    = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")
	blankLineRun   = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	enumeration    = regexp.MustCompile(`^\d+[.):]\s?`)
	leadingBullet  = regexp.MustCompile(`^[-*•]\s+`)
)

const (
	quoteChars    = "\"'`"
	emphasisChars = "`*_"
)

// Normalize turns one raw model response into at most MaxCandidates cleaned,
// case-insensitively unique candidates, in the order the model produced them.
// Structured output (a JSON list, bare or fenced) is preferred; otherwise the
// text is split by mode. Validity is not checked here, see Valid.
func Normalize(raw string, mode Mode) []string {
	text := strings.ReplaceAll(StripReasoning(raw), "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines, ok := structuredList(text)
	if !ok {
		lines = splitCandidates(text, mode)
	}

	pool := NewPool(MaxCandidates)
	for _, line := range lines {
		if c := Clean(line); c != "" {
			pool.Add(c)
		}
		if pool.Full() {
			break
		}
	}
	return pool.Items()
}

// StripReasoning removes balanced <think>...</think> blocks anywhere in s.
func StripReasoning(s string) string {
	return reasoningBlock.ReplaceAllString(s, "")
}

// Clean applies the per-candidate cleanup: enumeration, bullet, quotes,
// emphasis and stray reasoning tags are removed, in that order.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(enumeration.ReplaceAllString(s, ""))
	s = strings.TrimSpace(leadingBullet.ReplaceAllString(s, ""))
	s = unwrap(s)
	s = reasoningTag.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// unwrap peels quotes then emphasis until neither end changes, so both
// `**"msg"**` and `"**msg**"` reduce to msg.
func unwrap(s string) string {
	for {
		prev := s
		s = strings.TrimSpace(strings.Trim(s, quoteChars))
		s = strings.TrimSpace(strings.Trim(s, emphasisChars))
		if s == prev {
			return s
		}
	}
}

func splitCandidates(text string, mode Mode) []string {
	if mode == SubjectBody {
		return blankLineRun.Split(text, -1)
	}
	return strings.Split(text, "\n")
}

// structuredList looks for a JSON list of strings, first in the whole text
// and then inside the first fenced code block.
func structuredList(text string) ([]string, bool) {
	if list, ok := parseStringList(text); ok {
		return list, true
	}
	m := fencedBlock.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return parseStringList(strings.TrimSpace(m[1]))
}

func parseStringList(s string) ([]string, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}

	switch t := v.(type) {
	case []any:
		return stringElements(t)
	case map[string]any:
		if list, ok := t[preferredListKey].([]any); ok {
			if out, ok := stringElements(list); ok {
				return out, true
			}
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			list, ok := t[k].([]any)
			if !ok {
				continue
			}
			if out, ok := stringElements(list); ok {
				return out, true
			}
		}
	}
	return nil, false
}

func stringElements(list []any) ([]string, bool) {
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out, len(out) > 0
}
