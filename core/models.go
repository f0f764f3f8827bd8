package core

import (
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for sequence-numbered entities such as chat turns.
type ID uint64

// HashContent computes a deterministic digest of document content using
// BLAKE2b hashing. The content is trimmed before hashing, so identical
// content always yields an identical hash. Used for deduplication.
func HashContent(content string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(strings.TrimSpace(content)))
	sum := h.Sum(nil)
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = hexdigits[b>>4]
		out[i*2+1] = hexdigits[b&0x0f]
	}
	return string(out)
}

// summaryLength is the number of content characters retained in a summary.
const summaryLength = 300

// Summarize returns the first 300 characters of content, with an ellipsis
// appended when the content was truncated.
func Summarize(content string) string {
	if len(content) > summaryLength {
		return content[:summaryLength] + "..."
	}
	return content
}

// Keyword is a single extracted keyword with its occurrence count.
type Keyword struct {
	Word  string
	Count int
}

// Document is the canonical unit stored and searched. Source-specific
// records from every feed are normalized into this shape.
type Document struct {
	DocumentID    string         // Deterministic: "{source prefix}_{native id}"
	Source        string         // Origin feed tag
	Title         string
	Content       string         // Multi-line composed summary of all extracted fields
	DocumentType  string         // Lower-case, e.g. "ordinance", "permit"
	Category      Category
	Jurisdiction  string
	Authority     string
	URL           string
	EffectiveDate string         // ISO-like date string; compared lexicographically
	Metadata      map[string]any // Source-specific auxiliary fields, values may be nil

	// Derived fields attached at ingestion time.
	Summary     string
	Keywords    []Keyword
	ContentHash string

	InsertedAt time.Time // When the document was inserted into the store
	UpdatedAt  time.Time // When the document was last overwritten
}

// MetadataString returns the stringified form of a metadata field.
// Nil values and absent keys render as the empty string.
func (d *Document) MetadataString(key string) string {
	v, ok := d.Metadata[key]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

// ScoredDocument is a Document annotated with query relevance.
type ScoredDocument struct {
	Document        *Document
	SimilarityScore float64  // In [0, 1]
	MatchReasons    []string // Human-readable labels, fixed order
}

// SourceRef is the audit-trail entry echoed for each document used as
// answer context.
type SourceRef struct {
	Title           string
	Authority       string
	URL             string
	Category        Category
	SimilarityScore float64
	MatchReasons    []string
}

// ChatAnswer is the structured result of asking a question against the corpus.
type ChatAnswer struct {
	Answer                 string
	Sources                []SourceRef
	ConfidenceScore        float64
	Jurisdiction           string
	Model                  string
	ContextUsed            int
	TotalDocumentsSearched int
}

// Role identifies the author of a chat turn.
type Role int

const (
	// RoleUser represents the human asking questions.
	RoleUser Role = iota + 1
	// RoleAI represents the generated answer.
	RoleAI
)

// ChatTurn is a single message in the conversation history.
type ChatTurn struct {
	Id         ID
	Role       Role
	Message    string
	Timestamp  time.Time // When the message was produced
	InsertedAt time.Time // When the turn was appended to storage
}

// RawRecord is one source-specific record as fetched from an upstream feed:
// a flat mapping of field name to value. Normalizers own all field-name
// knowledge.
type RawRecord map[string]any

// IngestionSummary reports the outcome of a batch ingestion run.
type IngestionSummary struct {
	RunID           string
	Jurisdiction    string
	DocumentsLoaded int
	Skipped         int // Records that produced no document
	Categories      map[Category]int
	Sources         map[string]int
}

// DateRangeUnknown is the sentinel reported when no document carries an
// effective date.
const DateRangeUnknown = "N/A"

// DateRange is the lexicographic min/max of non-empty effective dates.
type DateRange struct {
	Earliest string
	Latest   string
}

// CorpusStats are aggregate views over the live corpus, computed on demand.
type CorpusStats struct {
	TotalDocuments int
	Categories     map[Category]int
	Sources        map[string]int
	Authorities    []string
	Types          map[string]int
	DateRange      DateRange
}
