package prompt

import (
	"sort"
	"strings"
)

// Complete returns the sorted candidates starting with text.
// Empty text matches every candidate; empty candidates never match.
func Complete(candidates []string, text string) []string {
	matches := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if strings.HasPrefix(c, text) {
			matches = append(matches, c)
		}
	}
	sort.Strings(matches)
	return matches
}
