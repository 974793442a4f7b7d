package resultlog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"AdmissionOfficer/internal/models"
)

func TestFileSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "results.json")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink() error = %v", err)
	}

	ctx := context.Background()
	first := &models.QueryLogEntry{Query: "q1", Answer: "a1", Sources: []string{"QA#1 (Fees)"}, Timestamp: "2026-09-01T10:00:00Z"}
	second := &models.QueryLogEntry{Query: "q2", Answer: "a2", Timestamp: "2026-09-01T10:01:00Z"}

	if err := sink.Append(ctx, first); err != nil {
		t.Fatalf("first Append() error = %v", err)
	}
	if err := sink.Append(ctx, second); err != nil {
		t.Fatalf("second Append() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read result file: %v", err)
	}
	var entries []models.QueryLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("result file is not a JSON array: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Query != "q1" || entries[1].Query != "q2" {
		t.Errorf("entries = %+v", entries)
	}
	if len(entries[0].Sources) != 1 || entries[0].Sources[0] != "QA#1 (Fees)" {
		t.Errorf("entries[0].Sources = %v", entries[0].Sources)
	}
}

func TestFileSinkRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	if err := os.WriteFile(path, []byte("{ not json"), 0o644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink() error = %v", err)
	}
	if err := sink.Append(context.Background(), &models.QueryLogEntry{Query: "q"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	var entries []models.QueryLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("result file is not a JSON array after recovery: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	dir := t.TempDir()
	a, _ := NewFileSink(filepath.Join(dir, "a.json"))
	b, _ := NewFileSink(filepath.Join(dir, "b.json"))

	multi := NewMultiSink(a, nil, b)
	if err := multi.Append(context.Background(), &models.QueryLogEntry{Query: "q"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	for _, path := range []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("missing sink output %s: %v", path, err)
		}
		var entries []models.QueryLogEntry
		if err := json.Unmarshal(data, &entries); err != nil || len(entries) != 1 {
			t.Errorf("sink output %s = %s", path, data)
		}
	}
}
