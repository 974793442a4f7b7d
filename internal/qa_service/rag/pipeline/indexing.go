package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"AdmissionOfficer/internal/embedding"
	"AdmissionOfficer/internal/qa_service/rag/dataset"
	"AdmissionOfficer/internal/qa_service/rag/interfaces"
	"AdmissionOfficer/internal/qa_service/rag/schema"
	"AdmissionOfficer/pkg/logger"
)

// defaultBatchSize is the number of records embedded per provider call.
const defaultBatchSize = 32

// maxConcurrentBatches bounds the embedding calls in flight during ingestion.
const maxConcurrentBatches = 4

// CollectionAdmin manages the lifecycle of the vector collection around a
// full re-ingestion.
type CollectionAdmin interface {
	// Recreate drops the collection if present and creates it fresh.
	Recreate(ctx context.Context) error
	// Flush persists pending inserts so they become searchable.
	Flush(ctx context.Context) error
}

// IndexingPipeline rebuilds the vector collection from the flat Q&A dataset:
// load records, embed their combined texts in batches, recreate the
// collection, insert the documents, then flush.
type IndexingPipeline struct {
	loader    *dataset.Loader
	embedder  embedding.Embedding
	store     interfaces.VectorStore
	admin     CollectionAdmin
	log       *logger.Logger
	batchSize int
}

// NewIndexingPipeline wires an ingestion pipeline from its collaborators.
func NewIndexingPipeline(
	loader *dataset.Loader,
	embedder embedding.Embedding,
	store interfaces.VectorStore,
	admin CollectionAdmin,
	log *logger.Logger,
) *IndexingPipeline {
	return &IndexingPipeline{
		loader:    loader,
		embedder:  embedder,
		store:     store,
		admin:     admin,
		log:       log,
		batchSize: defaultBatchSize,
	}
}

// Run performs a full re-ingestion. With dryRun set it loads and embeds the
// dataset but leaves the collection untouched, which validates the dataset and
// the embedding provider without destroying the index. It returns the number
// of records indexed (or validated).
func (p *IndexingPipeline) Run(ctx context.Context, dryRun bool) (int, error) {
	records, err := p.loader.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load dataset: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("dataset %s contains no usable records", p.loader.Path())
	}
	p.log.Info(fmt.Sprintf("Loaded %d records from %s", len(records), p.loader.Path()))

	docs := make([]*schema.Document, len(records))
	for i, record := range records {
		docs[i] = &schema.Document{
			ID:   record.ID,
			Text: record.CombinedText(),
			Metadata: map[string]interface{}{
				schema.MetadataKeySource:   p.loader.Path(),
				schema.MetadataKeyQAID:     record.ID,
				schema.MetadataKeyCategory: string(record.Category),
				schema.MetadataKeyQuestion: record.Question,
				schema.MetadataKeyAnswer:   record.Answer,
			},
		}
	}

	if err := p.embedAll(ctx, docs); err != nil {
		return 0, err
	}

	if dryRun {
		p.log.Info(fmt.Sprintf("Dry run: %d records embedded, collection left untouched", len(docs)))
		return len(docs), nil
	}

	if err := p.admin.Recreate(ctx); err != nil {
		return 0, fmt.Errorf("failed to recreate collection: %w", err)
	}
	if err := p.store.Add(ctx, docs); err != nil {
		return 0, err
	}
	if err := p.admin.Flush(ctx); err != nil {
		return 0, fmt.Errorf("failed to flush collection: %w", err)
	}

	p.log.Info(fmt.Sprintf("Indexed %d records", len(docs)))
	return len(docs), nil
}

// embedAll fills in the documents' embeddings, batching the provider calls and
// running a few batches in parallel.
func (p *IndexingPipeline) embedAll(ctx context.Context, docs []*schema.Document) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)

	for start := 0; start < len(docs); start += p.batchSize {
		batch := docs[start:min(start+p.batchSize, len(docs))]
		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, doc := range batch {
				texts[i] = doc.Text
			}
			vectors, err := p.embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return fmt.Errorf("failed to embed batch: %w", err)
			}
			if len(vectors) != len(batch) {
				return fmt.Errorf("embedding batch size mismatch: got %d vectors for %d texts", len(vectors), len(batch))
			}
			for i := range batch {
				batch[i].Embedding = vectors[i]
			}
			return nil
		})
	}

	return g.Wait()
}
