package resultlog

import (
	"context"

	"AdmissionOfficer/internal/database/kafka"
	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/interfaces"
)

// KafkaSink publishes query log entries to the configured Kafka topic so
// other systems can consume the answered-question stream.
type KafkaSink struct {
	publisher *kafka.QueryLogPublisher
}

// NewKafkaSink wraps a QueryLogPublisher as a query log sink.
func NewKafkaSink(publisher *kafka.QueryLogPublisher) *KafkaSink {
	return &KafkaSink{publisher: publisher}
}

func (s *KafkaSink) Append(ctx context.Context, entry *models.QueryLogEntry) error {
	return s.publisher.Publish(ctx, entry)
}

// Close releases the underlying Kafka writer.
func (s *KafkaSink) Close() error {
	return s.publisher.Close()
}

var _ interfaces.QueryLog = (*KafkaSink)(nil)
