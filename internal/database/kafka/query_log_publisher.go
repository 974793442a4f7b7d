package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"AdmissionOfficer/internal/models"

	"github.com/segmentio/kafka-go"
)

// QueryLogPublisher 封装了向 Kafka 发送查询日志的逻辑。
type QueryLogPublisher struct {
	writer *kafka.Writer
}

// NewQueryLogPublisher 创建一个新的 QueryLogPublisher 实例。
func NewQueryLogPublisher(client *KafkaClient) *QueryLogPublisher {
	// 为查询日志主题创建一个新的 writer 实例配置
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      client.Config.Brokers,
		Topic:        client.Config.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	})
	return &QueryLogPublisher{writer: writer}
}

// Publish 将 QueryLogEntry 序列化为 JSON 并发送到 Kafka，消息键为原始问题。
func (p *QueryLogPublisher) Publish(ctx context.Context, entry *models.QueryLogEntry) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal query log entry: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.Query),
		Value: jsonData,
	})

	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close 关闭底层的 writer 连接。
func (p *QueryLogPublisher) Close() error {
	return p.writer.Close()
}
