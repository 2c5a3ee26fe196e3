// File: internal/querygen/parse.go
package querygen

import (
	"regexp"
	"strings"
)

var (
	leadingNumbering = regexp.MustCompile(`^\s*[\-\*\d]+[\.\)]?\s*`)
	surroundingQuote = regexp.MustCompile(`^["'\x60]+|["'\x60]+$`)
)

// parseQueries splits raw LLM text on newlines or commas, strips
// numbering/bullets/surrounding quotes, trims, drops empties and
// duplicates (case-insensitive), and caps at maxQueries.
func parseQueries(raw string, maxQueries int) []string {
	var pieces []string
	for _, line := range strings.Split(raw, "\n") {
		for _, piece := range strings.Split(line, ",") {
			pieces = append(pieces, piece)
		}
	}

	seen := make(map[string]struct{}, len(pieces))
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		cleaned := clean(p)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cleaned)
		if len(out) >= maxQueries {
			break
		}
	}
	return out
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = leadingNumbering.ReplaceAllString(s, "")
	s = surroundingQuote.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
