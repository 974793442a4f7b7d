package resultlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/interfaces"
)

// FileSink appends query log entries to a JSON array file. The whole file is
// rewritten on every append so the result stays a single well-formed document
// that downstream tooling can read at any time. Appends are serialized by a
// mutex; the file is small enough that rewriting it is not a concern.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink creates a file sink writing to path, creating the parent
// directory if needed.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create result log directory: %w", err)
		}
	}
	return &FileSink{path: path}, nil
}

// Append adds one entry to the log file.
func (s *FileSink) Append(_ context.Context, entry *models.QueryLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []models.QueryLogEntry
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		// A corrupt log is replaced rather than failing every request.
		if jsonErr := json.Unmarshal(data, &entries); jsonErr != nil {
			entries = nil
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("failed to read result log: %w", err)
	}

	entries = append(entries, *entry)
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result log: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write result log: %w", err)
	}
	return nil
}

var _ interfaces.QueryLog = (*FileSink)(nil)
