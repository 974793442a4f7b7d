package interfaces

import (
	"context"

	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/schema"
)

// VectorStore is the interface for storing and querying document vectors.
// Query constrains the search to the given category when it is non-empty; the
// predicate is pushed down to the store as an exact-match metadata filter.
// Connectivity and collection errors are returned to the caller, which decides
// on fallback; an empty result with a nil error means "no matches".
type VectorStore interface {
	Add(ctx context.Context, docs []*schema.Document) error
	Query(ctx context.Context, embedding []float32, topK int, category models.Category) ([]*schema.Document, error)
}

// KeywordSearcher is the interface for the token-overlap fallback retriever
// over the flat Q&A dataset.
type KeywordSearcher interface {
	Retrieve(ctx context.Context, query string, topK int, category models.Category) ([]*schema.Document, error)
}

// QueryLog is the interface for the append-only sink that records every
// successfully answered query. The core never mutates or deletes entries.
type QueryLog interface {
	Append(ctx context.Context, entry *models.QueryLogEntry) error
}
