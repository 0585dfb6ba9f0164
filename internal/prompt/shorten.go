package prompt

import "fmt"

// ShortenSystem is the minimal instruction for subject repair requests.
const ShortenSystem = "You shorten git commit subject lines. Return only the shortened line."

// Shorten asks for line to be rewritten within limit characters.
func Shorten(line string, limit int) string {
	return fmt.Sprintf(`Shorten this commit subject to at most %d characters.
Keep the meaning and any type prefix such as "feat:" or "fix(scope):".
Return only the shortened line, without quotes.

%s
`, limit, line)
}
