package swarmnode

import "strings"

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// noteText strips the leading "[source] " tag from a retrieved note.
func noteText(note string) string {
	if _, rest, found := strings.Cut(note, "] "); found {
		return rest
	}
	return note
}

func containsAny(haystack string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}
