package search

import (
	"strings"

	"github.com/civiclens/civiclens/core"
)

// Strategy scores a single document against pre-tokenized query words.
// Returns the score and the human-readable match reasons. A zero score
// means the document is not a hit.
type Strategy interface {
	Name() string
	Score(words []string, doc *core.Document) (float64, []string)
}

// WeightedStrategy blends title, content, and metadata signals:
//
//   - 0.4 weighted by the fraction of query words found whole in the title
//   - 0.3 weighted by the fraction of query words found in the content,
//     counting matches inside longer words
//   - +0.2 when any query word appears in the matter_category metadata
//   - +0.1 when any query word appears in the sponsor metadata
//
// Scores clamp to 1.0.
type WeightedStrategy struct{}

var _ Strategy = (*WeightedStrategy)(nil)

func (WeightedStrategy) Name() string {
	return "weighted"
}

func (WeightedStrategy) Score(words []string, doc *core.Document) (float64, []string) {
	if len(words) == 0 {
		return 0, nil
	}

	score := 0.0
	titleSet := wordSet(doc.Title)
	contentLower := strings.ToLower(doc.Content)

	titleOverlap := countInSet(words, titleSet)
	if titleOverlap > 0 {
		score += 0.4 * (float64(titleOverlap) / float64(len(words)))
	}

	contentMatches := countSubstrings(words, contentLower)
	if contentMatches > 0 {
		score += 0.3 * (float64(contentMatches) / float64(len(words)))
	}

	categoryHit := anySubstring(words, strings.ToLower(doc.MetadataString("matter_category")))
	if categoryHit {
		score += 0.2
	}

	sponsorHit := anySubstring(words, strings.ToLower(doc.MetadataString("sponsor")))
	if sponsorHit {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	if score == 0 {
		return 0, nil
	}

	var reasons []string
	if titleOverlap > 0 {
		reasons = append(reasons, "Title match")
	}
	if contentMatches > 0 {
		reasons = append(reasons, "Content match")
	}
	if categoryHit {
		reasons = append(reasons, "Category match")
	}
	if sponsorHit {
		reasons = append(reasons, "Sponsor match")
	}

	return score, reasons
}

// OverlapStrategy counts whole-word overlaps only, weighting title hits
// above content hits: (content*0.7 + title*1.5) / |query words|, clamped
// to 1.0. Metadata is ignored.
type OverlapStrategy struct{}

var _ Strategy = (*OverlapStrategy)(nil)

func (OverlapStrategy) Name() string {
	return "overlap"
}

func (OverlapStrategy) Score(words []string, doc *core.Document) (float64, []string) {
	if len(words) == 0 {
		return 0, nil
	}

	contentMatches := countInSet(words, wordSet(doc.Content))
	titleMatches := countInSet(words, wordSet(doc.Title))

	score := (float64(contentMatches)*0.7 + float64(titleMatches)*1.5) / float64(len(words))
	if score > 1.0 {
		score = 1.0
	}
	if score == 0 {
		return 0, nil
	}

	var reasons []string
	if titleMatches > 0 {
		reasons = append(reasons, "Title match")
	}
	if contentMatches > 0 {
		reasons = append(reasons, "Content match")
	}

	return score, reasons
}
