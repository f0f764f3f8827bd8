// Package ingestion provides pipeline orchestration for loading civic records.
//
// The Pipeline type manages the ingestion workflow for raw feed records, including:
//   - Normalizing source-specific records into canonical documents
//   - Enriching documents with summaries, keywords, and content hashes
//   - Validating and upserting documents into storage
//
// Multi-source runs fetch concurrently on a worker pool. A source that fails
// upstream is logged and skipped; it never aborts the run.
package ingestion
