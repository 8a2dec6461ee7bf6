package recommender

import (
	"regexp"
	"strings"
)

// nonWord matches runs of characters outside [0-9A-Za-z_].
var nonWord = regexp.MustCompile(`\W+`)

// Tokenize lowercases text and splits it on runs of non-word characters.
// Empty tokens are dropped; token order is preserved.
func Tokenize(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
