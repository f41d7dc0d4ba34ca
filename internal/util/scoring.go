package util

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Suggest returns the candidate that best fuzzy-matches input, for
// "did you mean" hints. ok is false for blank input or when nothing matches.
func Suggest(input string, candidates []string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
