package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/normalize"
	"github.com/civiclens/civiclens/storage"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates the ingestion of raw feed records into the corpus.
// It normalizes, enriches, validates, and stores records, fanning fetches
// for multiple sources out over a worker pool.
type Pipeline struct {
	docRepository storage.DocumentRepository
	registry      *normalize.Registry
	pool          *ants.Pool
	jurisdiction  string
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent source fetches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithJurisdiction sets the jurisdiction reported in ingestion summaries.
// Default is "chicago".
func WithJurisdiction(jurisdiction string) Option {
	return func(p *Pipeline) error {
		p.jurisdiction = jurisdiction
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	docRepository storage.DocumentRepository,
	registry *normalize.Registry,
	opts ...Option,
) (*Pipeline, error) {
	if docRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		docRepository: docRepository,
		registry:      registry,
		pool:          pool,
		jurisdiction:  "chicago",
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestRecords normalizes and stores one source's raw records.
// Records that cannot be normalized or validated are skipped and counted;
// they never abort the batch.
func (p *Pipeline) IngestRecords(ctx context.Context, source string, recs []core.RawRecord) (*core.IngestionSummary, error) {
	normalizer, ok := p.registry.Lookup(source)
	if !ok {
		return nil, ErrUnknownSource
	}

	summary := &core.IngestionSummary{
		RunID:        uuid.NewString(),
		Jurisdiction: p.jurisdiction,
		Categories:   make(map[core.Category]int),
		Sources:      make(map[string]int),
	}

	docs := make([]*core.Document, 0, len(recs))
	for _, rec := range recs {
		doc, err := normalizeRecord(normalizer, rec)
		if err != nil {
			p.logger.Warn("skipping malformed record", "source", source, "err", err)
			summary.Skipped++
			continue
		}

		enrich(doc)

		if err := core.ValidateDocument(doc); err != nil {
			p.logger.Warn("skipping invalid document", "source", source, "documentID", doc.DocumentID, "err", err)
			summary.Skipped++
			continue
		}

		docs = append(docs, doc)
	}

	if len(docs) > 0 {
		if _, err := p.docRepository.UpsertDocuments(ctx, docs...); err != nil {
			return nil, err
		}
	}

	summary.DocumentsLoaded = len(docs)
	for _, doc := range docs {
		summary.Categories[doc.Category]++
		summary.Sources[doc.Source]++
	}

	p.logger.Info("ingested records",
		"source", source,
		"loaded", summary.DocumentsLoaded,
		"skipped", summary.Skipped)

	return summary, nil
}

// SourceRequest names one upstream fetch for IngestSources.
type SourceRequest struct {
	// Source is the normalizer registry tag for the feed.
	Source string

	// Category is an optional upstream category filter, passed through to
	// the fetch function.
	Category string

	// Limit caps how many records the fetch should return.
	Limit int
}

// FetchFunc retrieves raw records for one source request.
type FetchFunc func(ctx context.Context, req SourceRequest) ([]core.RawRecord, error)

// IngestSources fetches and ingests several sources concurrently on the
// worker pool. A source whose fetch or ingest fails is logged and
// contributes nothing; the others proceed.
func (p *Pipeline) IngestSources(ctx context.Context, fetch FetchFunc, sources []SourceRequest) (*core.IngestionSummary, error) {
	if fetch == nil {
		return nil, ErrFetchFuncRequired
	}

	total := &core.IngestionSummary{
		RunID:        uuid.NewString(),
		Jurisdiction: p.jurisdiction,
		Categories:   make(map[core.Category]int),
		Sources:      make(map[string]int),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, req := range sources {
		req := req
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			recs, err := fetch(ctx, req)
			if err != nil {
				p.logger.Error("upstream fetch failed", "source", req.Source, "category", req.Category, "err", err)
				return
			}

			summary, err := p.IngestRecords(ctx, req.Source, recs)
			if err != nil {
				p.logger.Error("ingest failed", "source", req.Source, "err", err)
				return
			}

			mu.Lock()
			defer mu.Unlock()
			total.DocumentsLoaded += summary.DocumentsLoaded
			total.Skipped += summary.Skipped
			for cat, n := range summary.Categories {
				total.Categories[cat] += n
			}
			for src, n := range summary.Sources {
				total.Sources[src] += n
			}
		})
		if err != nil {
			wg.Done()
			p.logger.Error("failed to submit ingest job", "source", req.Source, "err", err)
		}
	}

	wg.Wait()
	return total, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// normalizeRecord converts panics from unexpected record shapes into
// per-record errors so one bad record cannot take down a batch.
func normalizeRecord(normalizer normalize.Normalizer, rec core.RawRecord) (doc *core.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: normalizer panic: %v", core.ErrMalformedRecord, r)
		}
	}()
	return normalizer.Normalize(rec)
}

// enrich derives the stored summary, keyword, and hash fields.
func enrich(doc *core.Document) {
	doc.Summary = core.Summarize(doc.Content)
	doc.Keywords = core.ExtractKeywords(doc.Content)
	doc.ContentHash = core.HashContent(doc.Content)
}
