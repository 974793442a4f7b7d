package pipeline

import (
	"fmt"
	"strings"

	"AdmissionOfficer/internal/qa_service/rag/schema"
)

// FormatContext renders the retrieved documents into the context block handed
// to the language model. Each document contributes its category (when known)
// and its combined text followed by a separator line. Internal identifiers and
// file paths never appear here so the model cannot leak them into answers.
func FormatContext(docs []*schema.Document) string {
	fragments := make([]string, 0, len(docs))
	for _, doc := range docs {
		if category := doc.MetaString(schema.MetadataKeyCategory); category != "" {
			fragments = append(fragments, fmt.Sprintf("Category: %s\n%s\n---\n", category, doc.Text))
		} else {
			fragments = append(fragments, fmt.Sprintf("%s\n---\n", doc.Text))
		}
	}
	return strings.Join(fragments, "\n")
}

// Sources derives the human-readable source labels for the retrieved
// documents, in retrieval order with duplicates removed. A document with a
// record id yields "QA#<id> (<category>)"; otherwise the raw source string is
// used when present.
func Sources(docs []*schema.Document) []string {
	seen := make(map[string]struct{}, len(docs))
	sources := make([]string, 0, len(docs))
	for _, doc := range docs {
		label := ""
		if qaID := doc.MetaString(schema.MetadataKeyQAID); qaID != "" {
			label = fmt.Sprintf("QA#%s (%s)", qaID, doc.MetaString(schema.MetadataKeyCategory))
		} else if source := doc.MetaString(schema.MetadataKeySource); source != "" {
			label = source
		}
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		sources = append(sources, label)
	}
	return sources
}
