package core

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// maxKeywords is the number of top-frequency keywords retained per document.
const maxKeywords = 10

// wordPattern matches alphabetic runs of length >= 3.
var wordPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)

// ExtractKeywords derives the top keywords of a content block by frequency.
// Words are alphabetic runs of at least three characters, case-folded.
// Results are ordered by descending count; ties keep first-seen order,
// which downstream display relies on.
func ExtractKeywords(content string) []Keyword {
	words := wordPattern.FindAllString(strings.ToLower(content), -1)

	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, word := range words {
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	keywords := make([]Keyword, 0, len(order))
	for _, word := range order {
		keywords = append(keywords, Keyword{Word: word, Count: counts[word]})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// stringify renders a metadata value the way it is matched and displayed:
// numbers without exponent noise, booleans as true/false, everything else
// via the default formatting.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
