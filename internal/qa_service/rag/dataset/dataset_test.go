package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"AdmissionOfficer/internal/models"
)

func writeDataset(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeDataset(t, t.TempDir(), `[
		{"id": 1, "category": "Admissions", "question": "How do I apply?", "answer": "Online."},
		{"id": "2", "category": "Fees", "question": "  How much?  ", "answer": "A lot."}
	]`)

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	if records[0].ID != "1" || records[0].Category != models.CategoryAdmissions {
		t.Errorf("records[0] = %+v", records[0])
	}
	// Numeric and string ids both come out as strings.
	if records[1].ID != "2" {
		t.Errorf("records[1].ID = %q, want \"2\"", records[1].ID)
	}
	// Whitespace is trimmed.
	if records[1].Question != "How much?" {
		t.Errorf("records[1].Question = %q", records[1].Question)
	}
}

func TestLoaderAcceptsNonNumericIDs(t *testing.T) {
	path := writeDataset(t, t.TempDir(), `[
		{"id": "faq-1", "category": "Fees", "question": "Q", "answer": "A"},
		{"id": 7, "category": "Fees", "question": "Q2", "answer": "A2"},
		{"question": "Q3", "answer": "A3"}
	]`)

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0].ID != "faq-1" {
		t.Errorf("records[0].ID = %q, want \"faq-1\"", records[0].ID)
	}
	if records[1].ID != "7" {
		t.Errorf("records[1].ID = %q, want \"7\"", records[1].ID)
	}
	if records[2].ID != "" {
		t.Errorf("records[2].ID = %q, want empty", records[2].ID)
	}
}

func TestLoaderSkipsEmptyRecords(t *testing.T) {
	path := writeDataset(t, t.TempDir(), `[
		{"id": 1, "category": "Fees", "question": "", "answer": ""},
		{"id": 2, "category": "Fees", "question": "Q", "answer": ""}
	]`)

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != "2" {
		t.Errorf("records = %+v, want only id 2", records)
	}
}

func TestLoaderDefaultsUnknownCategory(t *testing.T) {
	path := writeDataset(t, t.TempDir(), `[
		{"id": 1, "category": "Cafeteria", "question": "Q", "answer": "A"},
		{"id": 2, "question": "Q2", "answer": "A2"}
	]`)

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, r := range records {
		if r.Category != models.CategoryGeneral {
			t.Errorf("record %s category = %q, want %q", r.ID, r.Category, models.CategoryGeneral)
		}
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope.json")).Load(); err == nil {
		t.Error("expected an error for a missing dataset")
	}
}

func TestLoaderMalformedJSON(t *testing.T) {
	path := writeDataset(t, t.TempDir(), `{"not": "an array"}`)
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("expected an error for a malformed dataset")
	}
}

func TestLoaderReloadsOnModification(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir, `[{"id": 1, "category": "Fees", "question": "Q", "answer": "A"}]`)

	loader := NewLoader(path)
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	// An unchanged file serves the cached records.
	again, err := loader.Load()
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if len(again) != 1 {
		t.Fatalf("len(again) = %d, want 1", len(again))
	}

	// Rewrite with a newer mtime; the loader must pick up the change.
	writeDataset(t, dir, `[
		{"id": 1, "category": "Fees", "question": "Q", "answer": "A"},
		{"id": 2, "category": "Fees", "question": "Q2", "answer": "A2"}
	]`)
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("failed to bump mtime: %v", err)
	}

	reloaded, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() after modification error = %v", err)
	}
	if len(reloaded) != 2 {
		t.Errorf("len(reloaded) = %d, want 2", len(reloaded))
	}
}
