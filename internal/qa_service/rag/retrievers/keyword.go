package retrievers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/dataset"
	"AdmissionOfficer/internal/qa_service/rag/schema"
	"AdmissionOfficer/pkg/logger"
)

// tokenCutset is stripped from the edges of every token before matching.
const tokenCutset = ".,()\""

// KeywordRetriever is the fallback retriever used when the vector path is
// unavailable. It ranks the flat Q&A dataset by the size of the token-set
// intersection between the query and each record's combined text.
type KeywordRetriever struct {
	loader *dataset.Loader
	log    *logger.Logger
}

// NewKeywordRetriever creates a keyword retriever over the given dataset.
func NewKeywordRetriever(loader *dataset.Loader, log *logger.Logger) *KeywordRetriever {
	return &KeywordRetriever{loader: loader, log: log}
}

// Retrieve returns up to topK records whose overlap score with the query is
// strictly greater than zero, best first. Ties keep the dataset order. When a
// category is given, only records of that category are considered. A missing
// or malformed dataset is reported as an error so the caller can distinguish
// retrieval failure from "no matches".
func (r *KeywordRetriever) Retrieve(_ context.Context, query string, topK int, category models.Category) ([]*schema.Document, error) {
	records, err := r.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("keyword retrieval failed: %w", err)
	}

	queryTokens := tokenize(query)

	type candidate struct {
		record models.QARecord
		score  int
	}
	candidates := make([]candidate, 0, len(records))
	for _, record := range records {
		if category != "" && record.Category != category {
			continue
		}
		score := overlap(queryTokens, tokenize(record.CombinedText()))
		candidates = append(candidates, candidate{record: record, score: score})
	}

	// Stable sort keeps the dataset order for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	docs := make([]*schema.Document, 0, topK)
	for _, c := range candidates {
		if len(docs) >= topK || c.score <= 0 {
			break
		}
		docs = append(docs, &schema.Document{
			ID:   c.record.ID,
			Text: c.record.CombinedText(),
			Metadata: map[string]interface{}{
				schema.MetadataKeySource:   r.loader.Path(),
				schema.MetadataKeyQAID:     c.record.ID,
				schema.MetadataKeyCategory: string(c.record.Category),
				schema.MetadataKeyQuestion: c.record.Question,
				schema.MetadataKeyAnswer:   c.record.Answer,
			},
		})
	}

	r.log.Debug(fmt.Sprintf("keyword retrieval returned %d of %d candidates", len(docs), len(candidates)))
	return docs, nil
}

// tokenize lowercases, splits on whitespace, and strips punctuation from the
// token edges. Duplicates collapse: scoring is a set intersection.
func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.Trim(field, tokenCutset)
		if token != "" {
			tokens[token] = struct{}{}
		}
	}
	return tokens
}

// overlap counts tokens present in both sets.
func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for token := range a {
		if _, ok := b[token]; ok {
			n++
		}
	}
	return n
}
