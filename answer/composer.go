package answer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/storage"
)

const (
	// ModelName identifies the deterministic answer generator in responses.
	ModelName = "chicago-legislation-based"

	// apology is returned when no document is relevant to the question.
	apology = "I'm sorry, I couldn't find specific Chicago legislation related to your query."

	contentSnippetLength = 300
)

// Composer turns a question plus ranked documents into a ChatAnswer and
// records the exchange in the conversation history.
type Composer struct {
	chatRepository storage.ChatRepository
	jurisdiction   string
	logger         *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithJurisdiction sets the jurisdiction reported in answers.
// Default is "chicago".
func WithJurisdiction(jurisdiction string) Option {
	return func(c *Composer) error {
		c.jurisdiction = jurisdiction
		return nil
	}
}

// NewComposer creates a new composer.
func NewComposer(chatRepository storage.ChatRepository, opts ...Option) (*Composer, error) {
	if chatRepository == nil {
		return nil, ErrChatRepositoryRequired
	}

	c := &Composer{
		chatRepository: chatRepository,
		jurisdiction:   "chicago",
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Answer composes a templated answer from the ranked candidates and appends
// the user question and the generated reply to the conversation history.
// totalSearched reports how many documents the ranker considered.
func (c *Composer) Answer(ctx context.Context, message string, candidates []core.ScoredDocument, totalSearched int) (*core.ChatAnswer, error) {
	if strings.TrimSpace(message) == "" {
		return nil, core.ErrEmptyQuery
	}

	text := apology
	confidence := 0.0

	if len(candidates) > 0 {
		best := candidates[0]
		confidence = best.SimilarityScore
		if confidence < 0 {
			confidence = 0.5
		}

		rendered, err := c.render(message, best.Document)
		if err != nil {
			c.logger.Error("error rendering answer template", "err", err)
			return nil, err
		}
		text = rendered
	}

	sources := make([]core.SourceRef, 0, len(candidates))
	for _, cand := range candidates {
		sources = append(sources, core.SourceRef{
			Title:           cand.Document.Title,
			Authority:       cand.Document.Authority,
			URL:             cand.Document.URL,
			Category:        cand.Document.Category,
			SimilarityScore: cand.SimilarityScore,
			MatchReasons:    cand.MatchReasons,
		})
	}

	now := time.Now().UTC()
	_, err := c.chatRepository.AppendTurns(ctx,
		&core.ChatTurn{Role: core.RoleUser, Message: message, Timestamp: now},
		&core.ChatTurn{Role: core.RoleAI, Message: text, Timestamp: time.Now().UTC()},
	)
	if err != nil {
		c.logger.Error("error recording chat exchange", "err", err)
		return nil, err
	}

	return &core.ChatAnswer{
		Answer:                 text,
		Sources:                sources,
		ConfidenceScore:        confidence,
		Jurisdiction:           c.jurisdiction,
		Model:                  ModelName,
		ContextUsed:            len(candidates),
		TotalDocumentsSearched: totalSearched,
	}, nil
}

// History returns the most recent turns of the conversation.
func (c *Composer) History(ctx context.Context, limit int) ([]*core.ChatTurn, error) {
	return c.chatRepository.RecentTurns(ctx, limit)
}

// ClearHistory wipes the conversation, returning how many turns were removed.
func (c *Composer) ClearHistory(ctx context.Context) (int, error) {
	return c.chatRepository.ClearTurns(ctx)
}

func (c *Composer) render(message string, doc *core.Document) (string, error) {
	intent := classifyIntent(message)
	tmpl := templateFor(intent)

	vars := map[string]any{
		"title":           doc.Title,
		"record_number":   metadataOrNA(doc, "record_number"),
		"matter_type":     metadataOrNA(doc, "matter_type"),
		"status":          metadataOrNA(doc, "status"),
		"sponsor":         metadataOrNA(doc, "sponsor"),
		"committee":       metadataOrNA(doc, "committee_referral"),
		"matter_category": metadataOrNA(doc, "matter_category"),
	}
	if intent == IntentGeneral {
		vars["introduction_date"] = orNA(doc.EffectiveDate)
		vars["content_snippet"] = contentSnippet(doc.Content)
		vars["authority"] = orNA(doc.Authority)
		vars["category"] = string(doc.Category)
		vars["document_type"] = doc.DocumentType
	}

	return tmpl.Format(vars)
}

func metadataOrNA(doc *core.Document, key string) string {
	return orNA(doc.MetadataString(key))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func contentSnippet(content string) string {
	if len(content) > contentSnippetLength {
		content = content[:contentSnippetLength]
	}
	return content + "..."
}
