package vectorstore

import (
	"context"

	"AdmissionOfficer/internal/database/milvus"
)

// MilvusAdmin exposes the collection lifecycle operations the ingestion
// pipeline needs, delegating to the schema-aware client wrapper.
type MilvusAdmin struct {
	client *milvus.MilvusClient
}

// NewMilvusAdmin wraps the Milvus client wrapper for ingestion use.
func NewMilvusAdmin(client *milvus.MilvusClient) *MilvusAdmin {
	return &MilvusAdmin{client: client}
}

func (a *MilvusAdmin) Recreate(ctx context.Context) error {
	return a.client.RecreateCollection(ctx)
}

func (a *MilvusAdmin) Flush(ctx context.Context) error {
	return a.client.FlushCollection(ctx)
}
