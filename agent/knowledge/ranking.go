package knowledge

import (
	"strings"
	"unicode"
)

const minTokenLength = 3

// tokenize lowercases the query and keeps distinct alphanumeric runs long
// enough to carry meaning.
func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// scoreContent counts how many distinct query tokens appear in the content.
func scoreContent(tokens []string, content string) int {
	lowered := strings.ToLower(content)
	score := 0
	for _, tok := range tokens {
		if strings.Contains(lowered, tok) {
			score++
		}
	}
	return score
}
