package schema

const (
	// MetadataKeyQAID is the key for the knowledge-base record identifier.
	MetadataKeyQAID = "qa_id"
	// MetadataKeyCategory is the key for the record's topic category.
	MetadataKeyCategory = "category"
	// MetadataKeyQuestion is the key for the record's original question text.
	MetadataKeyQuestion = "question"
	// MetadataKeyAnswer is the key for the record's original answer text.
	MetadataKeyAnswer = "answer"
	// MetadataKeySource is the key for the record's provenance (e.g. the dataset file).
	MetadataKeySource = "source"
	// MetadataKeyScore is the key for the similarity score attached by the vector store.
	MetadataKeyScore = "score"
)

// Document is the central data structure representing a retrieved piece of
// knowledge and its associated metadata. It is the primary data carrier
// throughout the retrieval and answer pipeline.
type Document struct {
	// ID is the unique identifier for this document.
	ID string

	// Text is the combined question/answer content used for embedding and as
	// generator context.
	Text string

	// Embedding is the vector representation of the text.
	Embedding []float32

	// Metadata holds arbitrary data about the document (qa_id, category,
	// question, answer, source, score).
	Metadata map[string]interface{}
}

// MetaString returns the named metadata value as a string, or "" when the key
// is absent or not a string.
func (d *Document) MetaString(key string) string {
	if d.Metadata == nil {
		return ""
	}
	if v, ok := d.Metadata[key].(string); ok {
		return v
	}
	return ""
}
