package search

import "strings"

// queryWords lowercases and whitespace-splits a query into unique words,
// preserving first-seen order so scoring and tie-breaks stay deterministic.
func queryWords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]bool, len(fields))
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}

// wordSet builds a membership set from whitespace-split lowercased text.
func wordSet(text string) map[string]bool {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(fields))
	for _, w := range fields {
		set[w] = true
	}
	return set
}

// countInSet counts how many words are members of the set.
func countInSet(words []string, set map[string]bool) int {
	count := 0
	for _, w := range words {
		if set[w] {
			count++
		}
	}
	return count
}

// countSubstrings counts how many words appear anywhere in the lowercased
// text, including inside longer words.
func countSubstrings(words []string, loweredText string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(loweredText, w) {
			count++
		}
	}
	return count
}

// anySubstring reports whether any word appears anywhere in the lowercased
// text.
func anySubstring(words []string, loweredText string) bool {
	for _, w := range words {
		if strings.Contains(loweredText, w) {
			return true
		}
	}
	return false
}
