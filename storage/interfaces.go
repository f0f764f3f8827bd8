package storage

import (
	"context"

	"github.com/civiclens/civiclens/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentFilter narrows ListDocuments results. Zero-valued fields match
// everything.
type DocumentFilter struct {
	// Category keeps only documents with this exact category.
	Category core.Category

	// Source keeps only documents produced from this feed.
	Source string

	// DocumentType keeps only documents of this lower-case type.
	DocumentType string

	// Jurisdiction keeps only documents for this jurisdiction.
	Jurisdiction string

	// Limit caps the number of returned documents. Zero means no cap.
	Limit int
}

// DocumentRepository provides operations for managing canonical documents.
type DocumentRepository interface {
	Repository

	// UpsertDocuments inserts or replaces documents keyed by DocumentID.
	// Sets InsertedAt on first write and UpdatedAt on every write.
	// Returns the stored documents with timestamps populated.
	UpsertDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by its DocumentID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, documentID string) (*core.Document, error)

	// ListDocuments retrieves documents matching the filter, ordered by
	// DocumentID.
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]*core.Document, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// DeleteDocuments removes documents by their DocumentIDs.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, documentIDs ...string) error

	// CorpusStats computes aggregate counts over the whole corpus.
	// The date range is the lexicographic min/max of non-empty effective
	// dates; both ends are the unknown sentinel when no document has one.
	CorpusStats(ctx context.Context) (*core.CorpusStats, error)
}

// ChatRepository provides operations for managing conversation history.
type ChatRepository interface {
	Repository

	// AppendTurns appends turns to the conversation history in order.
	// For turns with Id=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the turns with generated IDs and timestamps populated.
	AppendTurns(ctx context.Context, turns ...*core.ChatTurn) ([]*core.ChatTurn, error)

	// RecentTurns retrieves the N most recently appended turns in
	// append order (oldest of the window first).
	// Returns up to limit turns; limit <= 0 returns the whole history.
	RecentTurns(ctx context.Context, limit int) ([]*core.ChatTurn, error)

	// CountTurns returns the number of stored turns.
	CountTurns(ctx context.Context) (int, error)

	// ClearTurns removes the entire conversation history.
	// Returns the number of turns removed.
	ClearTurns(ctx context.Context) (int, error)
}
