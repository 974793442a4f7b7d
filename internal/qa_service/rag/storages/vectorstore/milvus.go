package vectorstore

import (
	"context"
	"fmt"

	"AdmissionOfficer/internal/database/milvus"
	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/interfaces"
	"AdmissionOfficer/internal/qa_service/rag/schema"
	"AdmissionOfficer/pkg/logger"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const (
	// Schema fields of the qa_knowledge collection.
	FieldID           = "id"
	FieldEmbedding    = "embedding"
	FieldCombinedText = "combined_text"
	FieldSource       = "source"
	FieldQAID         = "qa_id"
	FieldCategory     = "category"
	FieldQuestion     = "question"
	FieldAnswer       = "answer"
)

// MilvusStore adapts the project's Milvus client wrapper to the VectorStore
// interface, using the raw milvus-sdk-go client for metadata filtering.
type MilvusStore struct {
	log        *logger.Logger
	client     client.Client
	collection string
}

// NewMilvusStore creates a new MilvusStore adapter on top of the existing
// MilvusClient wrapper and the name of the collection to use.
func NewMilvusStore(milvusClient *milvus.MilvusClient, collectionName string, log *logger.Logger) (*MilvusStore, error) {
	if milvusClient == nil || milvusClient.Client == nil {
		return nil, fmt.Errorf("milvus client is not initialized")
	}
	return &MilvusStore{
		log:        log,
		client:     milvusClient.Client,
		collection: collectionName,
	}, nil
}

// Add inserts documents into the Milvus collection, storing the embedding and
// the metadata fields in separate columns.
func (s *MilvusStore) Add(ctx context.Context, docs []*schema.Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	embeddings := make([][]float32, len(docs))
	texts := make([]string, len(docs))
	sources := make([]string, len(docs))
	qaIDs := make([]string, len(docs))
	categories := make([]string, len(docs))
	questions := make([]string, len(docs))
	answers := make([]string, len(docs))

	dim := 0
	for i, doc := range docs {
		ids[i] = doc.ID
		embeddings[i] = doc.Embedding
		texts[i] = doc.Text
		if len(doc.Embedding) > dim {
			dim = len(doc.Embedding)
		}
		sources[i] = doc.MetaString(schema.MetadataKeySource)
		qaIDs[i] = doc.MetaString(schema.MetadataKeyQAID)
		categories[i] = doc.MetaString(schema.MetadataKeyCategory)
		questions[i] = doc.MetaString(schema.MetadataKeyQuestion)
		answers[i] = doc.MetaString(schema.MetadataKeyAnswer)
	}

	columns := []entity.Column{
		entity.NewColumnVarChar(FieldID, ids),
		entity.NewColumnFloatVector(FieldEmbedding, dim, embeddings),
		entity.NewColumnVarChar(FieldCombinedText, texts),
		entity.NewColumnVarChar(FieldSource, sources),
		entity.NewColumnVarChar(FieldQAID, qaIDs),
		entity.NewColumnVarChar(FieldCategory, categories),
		entity.NewColumnVarChar(FieldQuestion, questions),
		entity.NewColumnVarChar(FieldAnswer, answers),
	}

	s.log.Info(fmt.Sprintf("Inserting %d documents into Milvus collection: %s", len(docs), s.collection))
	_, err := s.client.Insert(ctx, s.collection, "" /* default partition */, columns...)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to insert data into Milvus: %v", err))
		return fmt.Errorf("failed to insert data into Milvus: %w", err)
	}

	return nil
}

// Query performs a vector similarity search, optionally constrained to one
// category via an exact-match filter expression pushed down to Milvus.
// Ordering is whatever the collection's metric produces, best first; this
// adapter does not re-rank. Errors are returned so the pipeline can fall back
// on a typed signal instead of an empty result.
func (s *MilvusStore) Query(ctx context.Context, embedding []float32, topK int, category models.Category) ([]*schema.Document, error) {
	filterExpr := ""
	if category != "" {
		filterExpr = fmt.Sprintf(`%s == "%s"`, FieldCategory, string(category))
	}

	searchParams, _ := entity.NewIndexIvfFlatSearchParam(10)
	outputFields := []string{FieldCombinedText, FieldSource, FieldQAID, FieldCategory, FieldQuestion, FieldAnswer}

	s.log.Info(fmt.Sprintf("Querying Milvus collection '%s' with filter: '%s'", s.collection, filterExpr))

	searchResults, err := s.client.Search(
		ctx, s.collection, []string{}, filterExpr, outputFields,
		[]entity.Vector{entity.FloatVector(embedding)},
		FieldEmbedding, entity.L2, topK, searchParams,
	)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to search in Milvus: %v", err))
		return nil, fmt.Errorf("failed to search in Milvus: %w", err)
	}

	var results []*schema.Document
	for _, res := range searchResults {
		varCharData := func(name string) []string {
			for _, field := range res.Fields {
				if field.Name() == name {
					if col, ok := field.(*entity.ColumnVarChar); ok {
						return col.Data()
					}
				}
			}
			return nil
		}

		texts := varCharData(FieldCombinedText)
		sources := varCharData(FieldSource)
		qaIDs := varCharData(FieldQAID)
		categories := varCharData(FieldCategory)
		questions := varCharData(FieldQuestion)
		answers := varCharData(FieldAnswer)

		at := func(data []string, i int) string {
			if i < len(data) {
				return data[i]
			}
			return ""
		}

		for i := 0; i < res.ResultCount; i++ {
			doc := &schema.Document{
				ID:   at(qaIDs, i),
				Text: at(texts, i),
				Metadata: map[string]interface{}{
					schema.MetadataKeyScore:    res.Scores[i],
					schema.MetadataKeySource:   at(sources, i),
					schema.MetadataKeyQAID:     at(qaIDs, i),
					schema.MetadataKeyCategory: at(categories, i),
					schema.MetadataKeyQuestion: at(questions, i),
					schema.MetadataKeyAnswer:   at(answers, i),
				},
			}
			results = append(results, doc)
		}
	}

	return results, nil
}

// compile-time check to ensure MilvusStore implements the VectorStore interface
var _ interfaces.VectorStore = (*MilvusStore)(nil)
