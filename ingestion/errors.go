package ingestion

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrRegistryRequired is returned when a normalizer registry is not provided.
	ErrRegistryRequired = errors.New("normalizer registry required")

	// ErrFetchFuncRequired is returned when a fetch function is not provided.
	ErrFetchFuncRequired = errors.New("fetch function required")

	// ErrUnknownSource is returned for a source tag with no registered normalizer.
	ErrUnknownSource = errors.New("unknown source")
)
