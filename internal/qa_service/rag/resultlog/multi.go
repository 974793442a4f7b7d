package resultlog

import (
	"context"

	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/interfaces"
)

// MultiSink fans an entry out to several sinks. All sinks are attempted; the
// first error is returned after the rest have run.
type MultiSink struct {
	sinks []interfaces.QueryLog
}

// NewMultiSink composes the given sinks. Nil sinks are skipped.
func NewMultiSink(sinks ...interfaces.QueryLog) *MultiSink {
	filtered := make([]interfaces.QueryLog, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return &MultiSink{sinks: filtered}
}

func (m *MultiSink) Append(ctx context.Context, entry *models.QueryLogEntry) error {
	var firstErr error
	for _, sink := range m.sinks {
		if err := sink.Append(ctx, entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ interfaces.QueryLog = (*MultiSink)(nil)
