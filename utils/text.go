package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// lines such as titles and names keep no markup at all
	linePolicy = bluemonday.StrictPolicy()
	// bodies keep the usual user-generated-content subset
	contentPolicy = bluemonday.UGCPolicy()
)

// SanitizeLine strips all HTML from a single-line field and trims it.
func SanitizeLine(input string) string {
	return strings.TrimSpace(linePolicy.Sanitize(input))
}

// SanitizeContent cleans user-supplied HTML to prevent XSS and trims the result.
// Input made only of disallowed markup comes back empty.
func SanitizeContent(input string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(input))
}

// Unique removes duplicates, keeping the first occurrence of each value.
func Unique[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
