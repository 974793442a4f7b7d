package retrievers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/dataset"
	"AdmissionOfficer/internal/qa_service/rag/schema"
	"AdmissionOfficer/pkg/logger"
	"github.com/sirupsen/logrus"
)

func newTestRetriever(t *testing.T, content string) *KeywordRetriever {
	t.Helper()
	logger.Init(logrus.ErrorLevel)

	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return NewKeywordRetriever(dataset.NewLoader(path), logger.New("test", "", ""))
}

const testDataset = `[
	{"id": 1, "category": "Admissions", "question": "How do I apply to the university?", "answer": "Submit the online application form."},
	{"id": 2, "category": "Fees", "question": "What is the tuition fee?", "answer": "Tuition depends on the program."},
	{"id": 3, "category": "Fees", "question": "Can I pay in installments?", "answer": "Yes, tuition can be split."}
]`

func TestKeywordRetrieverRanksByOverlap(t *testing.T) {
	r := newTestRetriever(t, testDataset)

	docs, err := r.Retrieve(context.Background(), "what is the tuition fee", 3, "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(docs) == 0 {
		t.Fatal("expected at least one document")
	}
	if docs[0].ID != "2" {
		t.Errorf("docs[0].ID = %s, want 2", docs[0].ID)
	}
}

func TestKeywordRetrieverZeroOverlap(t *testing.T) {
	r := newTestRetriever(t, testDataset)

	docs, err := r.Retrieve(context.Background(), "zebra quantum", 3, "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("len(docs) = %d, want 0 for zero-overlap query", len(docs))
	}
}

func TestKeywordRetrieverCategoryFilter(t *testing.T) {
	r := newTestRetriever(t, testDataset)

	docs, err := r.Retrieve(context.Background(), "how do I apply to the university", 3, models.CategoryFees)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	for _, doc := range docs {
		if doc.MetaString(schema.MetadataKeyCategory) != string(models.CategoryFees) {
			t.Errorf("doc %s category = %s, want %s", doc.ID, doc.MetaString(schema.MetadataKeyCategory), models.CategoryFees)
		}
	}
}

func TestKeywordRetrieverTopK(t *testing.T) {
	r := newTestRetriever(t, testDataset)

	docs, err := r.Retrieve(context.Background(), "the tuition", 1, "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("len(docs) = %d, want 1", len(docs))
	}
}

func TestKeywordRetrieverTieKeepsDatasetOrder(t *testing.T) {
	r := newTestRetriever(t, `[
		{"id": 1, "category": "General", "question": "alpha beta", "answer": "x"},
		{"id": 2, "category": "General", "question": "alpha beta", "answer": "y"}
	]`)

	docs, err := r.Retrieve(context.Background(), "alpha beta", 2, "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if docs[0].ID != "1" || docs[1].ID != "2" {
		t.Errorf("tie order = [%s, %s], want [1, 2]", docs[0].ID, docs[1].ID)
	}
}

func TestKeywordRetrieverStripsPunctuation(t *testing.T) {
	r := newTestRetriever(t, `[
		{"id": 1, "category": "General", "question": "What is the deadline?", "answer": "(June)."}
	]`)

	docs, err := r.Retrieve(context.Background(), "deadline? june", 1, "")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
}

func TestKeywordRetrieverMissingDataset(t *testing.T) {
	logger.Init(logrus.ErrorLevel)
	r := NewKeywordRetriever(dataset.NewLoader(filepath.Join(t.TempDir(), "nope.json")), logger.New("test", "", ""))

	if _, err := r.Retrieve(context.Background(), "anything", 3, ""); err == nil {
		t.Error("expected an error when the dataset is missing")
	}
}
