package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"AdmissionOfficer/internal/models"
)

// flexibleID decodes a record id that may appear as a JSON number or as an
// arbitrary string ("42", "faq-1"); either way it normalizes to a string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

// rawRecord mirrors one entry of the flat JSON dataset.
type rawRecord struct {
	ID       flexibleID `json:"id"`
	Category string     `json:"category"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
}

// Loader reads the flat Q&A dataset from disk and caches the decoded records.
// The cache is invalidated when the file's modification time changes, so the
// fallback path does not re-read and re-parse the file on every query.
type Loader struct {
	path string

	mu      sync.Mutex
	records []models.QARecord
	modTime time.Time
	loaded  bool
}

// NewLoader creates a loader for the dataset at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the dataset location.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the dataset records, reading the file only when it changed
// since the last call. Records with neither question nor answer are skipped;
// records whose category is missing or not one of the known categories are
// narrowed to General so the category enum stays closed.
func (l *Loader) Load() ([]models.QARecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("dataset not available at %s: %w", l.path, err)
	}
	if l.loaded && info.ModTime().Equal(l.modTime) {
		return l.records, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", l.path, err)
	}

	var raw []rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", l.path, err)
	}

	records := make([]models.QARecord, 0, len(raw))
	for _, entry := range raw {
		question := strings.TrimSpace(entry.Question)
		answer := strings.TrimSpace(entry.Answer)
		if question == "" && answer == "" {
			continue
		}
		category := models.CategoryGeneral
		if models.IsValidCategory(entry.Category) {
			category = models.Category(entry.Category)
		}
		records = append(records, models.QARecord{
			ID:       string(entry.ID),
			Category: category,
			Question: question,
			Answer:   answer,
		})
	}

	l.records = records
	l.modTime = info.ModTime()
	l.loaded = true
	return records, nil
}
