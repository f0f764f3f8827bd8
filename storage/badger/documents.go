package badger

import (
	"context"
	"slices"
	"time"

	"github.com/civiclens/civiclens/core"
	"github.com/civiclens/civiclens/storage"
	"github.com/dgraph-io/badger/v4"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	return &DocumentRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *DocumentRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertDocuments inserts or replaces documents keyed by DocumentID.
func (r *DocumentRepository) UpsertDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, doc := range docs {
			key := makeDocumentKey(doc.DocumentID)

			// Preserve the original insertion time on replacement
			old, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				doc.InsertedAt = old.InsertedAt
			} else if doc.InsertedAt.IsZero() {
				doc.InsertedAt = now
			}
			doc.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalDocument(doc)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// GetDocument retrieves a single document by its DocumentID.
func (r *DocumentRepository) GetDocument(ctx context.Context, documentID string) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDocument(tx, makeDocumentKey(documentID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListDocuments retrieves documents matching the filter, ordered by DocumentID.
func (r *DocumentRepository) ListDocuments(ctx context.Context, filter storage.DocumentFilter) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanDocuments(tx, func(doc *core.Document) bool {
			if !matchesFilter(doc, filter) {
				return true
			}
			results = append(results, doc)
			return filter.Limit <= 0 || len(results) < filter.Limit
		})
	}, false)
	return results, err
}

// CountDocuments returns the number of stored documents.
func (r *DocumentRepository) CountDocuments(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// DeleteDocuments removes documents by their DocumentIDs.
func (r *DocumentRepository) DeleteDocuments(ctx context.Context, documentIDs ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range documentIDs {
			key := makeDocumentKey(id)
			doc, err := r.readDocument(tx, key)
			if err != nil {
				return err
			}
			if doc == nil {
				return storage.ErrNotFound
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CorpusStats computes aggregate counts over the whole corpus.
func (r *DocumentRepository) CorpusStats(ctx context.Context) (*core.CorpusStats, error) {
	stats := &core.CorpusStats{
		Categories: make(map[core.Category]int),
		Sources:    make(map[string]int),
		Types:      make(map[string]int),
		DateRange: core.DateRange{
			Earliest: core.DateRangeUnknown,
			Latest:   core.DateRangeUnknown,
		},
	}

	authorities := make(map[string]bool)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanDocuments(tx, func(doc *core.Document) bool {
			stats.TotalDocuments++
			stats.Categories[doc.Category]++
			stats.Sources[doc.Source]++
			stats.Types[doc.DocumentType]++
			if doc.Authority != "" {
				authorities[doc.Authority] = true
			}
			if doc.EffectiveDate != "" {
				if stats.DateRange.Earliest == core.DateRangeUnknown || doc.EffectiveDate < stats.DateRange.Earliest {
					stats.DateRange.Earliest = doc.EffectiveDate
				}
				if stats.DateRange.Latest == core.DateRangeUnknown || doc.EffectiveDate > stats.DateRange.Latest {
					stats.DateRange.Latest = doc.EffectiveDate
				}
			}
			return true
		})
	}, false)
	if err != nil {
		return nil, err
	}

	stats.Authorities = make([]string, 0, len(authorities))
	for a := range authorities {
		stats.Authorities = append(stats.Authorities, a)
	}
	slices.Sort(stats.Authorities)

	return stats, nil
}

// scanDocuments iterates the document prefix in key order, invoking fn for
// each document until fn returns false.
func (r *DocumentRepository) scanDocuments(tx *badger.Txn, fn func(doc *core.Document) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(documentPrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var doc *core.Document
		err := iter.Item().Value(func(val []byte) error {
			var err error
			doc, err = storage.UnmarshalDocument(val)
			return err
		})
		if err != nil {
			return err
		}
		if doc == nil {
			continue
		}
		if !fn(doc) {
			return nil
		}
	}
	return nil
}

// readDocument reads a document from the transaction. Missing keys return
// (nil, nil).
func (r *DocumentRepository) readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		doc, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return doc, err
}

func matchesFilter(doc *core.Document, filter storage.DocumentFilter) bool {
	if filter.Category != "" && doc.Category != filter.Category {
		return false
	}
	if filter.Source != "" && doc.Source != filter.Source {
		return false
	}
	if filter.DocumentType != "" && doc.DocumentType != filter.DocumentType {
		return false
	}
	if filter.Jurisdiction != "" && doc.Jurisdiction != filter.Jurisdiction {
		return false
	}
	return true
}
