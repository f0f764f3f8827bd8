package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/storage"
)

const defaultLimit = 10

// Query describes one ranked search over the corpus.
type Query struct {
	// Text is the free-text query. Blank text is an error.
	Text string

	// Jurisdiction keeps only documents for this jurisdiction when set.
	Jurisdiction string

	// Category keeps only documents with this category when set.
	Category core.Category

	// Limit caps the number of hits. Zero or negative uses the default (10).
	Limit int

	// Strategy overrides the ranker's default scoring strategy when set.
	Strategy Strategy
}

// Ranker scores stored documents against free-text queries.
type Ranker struct {
	docRepository storage.DocumentRepository
	strategy      Strategy
	logger        *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithStrategy sets the default scoring strategy.
// Default is WeightedStrategy.
func WithStrategy(strategy Strategy) Option {
	return func(r *Ranker) error {
		if strategy == nil {
			return ErrStrategyRequired
		}
		r.strategy = strategy
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a new ranker.
func NewRanker(docRepository storage.DocumentRepository, opts ...Option) (*Ranker, error) {
	if docRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	r := &Ranker{
		docRepository: docRepository,
		strategy:      WeightedStrategy{},
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Search scores every document passing the query's filters and returns
// hits in descending score order. Zero-score documents are excluded; ties
// keep storage iteration order.
func (r *Ranker) Search(ctx context.Context, query Query) ([]core.ScoredDocument, error) {
	return r.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor runs Search with per-stage observation callbacks.
func (r *Ranker) SearchWithMonitor(ctx context.Context, query Query, monitor SearchMonitor) ([]core.ScoredDocument, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query.Text) == "" {
		return nil, core.ErrEmptyQuery
	}

	monitor.Start(query.Text)

	strategy := query.Strategy
	if strategy == nil {
		strategy = r.strategy
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	candidates, err := r.docRepository.ListDocuments(ctx, storage.DocumentFilter{
		Category:     query.Category,
		Jurisdiction: query.Jurisdiction,
	})
	if err != nil {
		r.logger.Error("error listing candidate documents", "err", err)
		return nil, err
	}
	monitor.AfterFilter(len(candidates))

	words := queryWords(query.Text)

	results := make([]core.ScoredDocument, 0, len(candidates))
	for _, doc := range candidates {
		score, reasons := strategy.Score(words, doc)
		if score <= 0 {
			continue
		}
		hit := core.ScoredDocument{
			Document:        doc,
			SimilarityScore: score,
			MatchReasons:    reasons,
		}
		monitor.ScoredHit(hit)
		results = append(results, hit)
	}

	// Stable keeps storage iteration order on equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	monitor.Finish(results)

	return results, nil
}
