package service

import (
	"context"
	"fmt"
	"time"

	"AdmissionOfficer/internal/config"
	"AdmissionOfficer/internal/database/kafka"
	"AdmissionOfficer/internal/database/milvus"
	"AdmissionOfficer/internal/database/redis"
	"AdmissionOfficer/internal/embedding"
	"AdmissionOfficer/internal/llm"
	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/classifier"
	"AdmissionOfficer/internal/qa_service/rag/dataset"
	"AdmissionOfficer/internal/qa_service/rag/interfaces"
	"AdmissionOfficer/internal/qa_service/rag/memory"
	"AdmissionOfficer/internal/qa_service/rag/pipeline"
	"AdmissionOfficer/internal/qa_service/rag/resultlog"
	"AdmissionOfficer/internal/qa_service/rag/retrievers"
	"AdmissionOfficer/internal/qa_service/rag/storages/vectorstore"
	"AdmissionOfficer/pkg/logger"
)

// Service owns the answering pipeline and the session store. Components are
// wired once at startup; a Milvus outage at boot degrades the service to the
// keyword fallback instead of failing it.
type Service struct {
	log      *logger.Logger
	pipeline *pipeline.AnswerPipeline
	sessions memory.Store
	embedder embedding.Embedding

	milvusClient *milvus.MilvusClient
	kafkaSink    *resultlog.KafkaSink
}

// NewService wires the QA service from configuration.
func NewService(ctx context.Context, cfg *config.AppConfig, log *logger.Logger) (*Service, error) {
	embedder, err := embedding.NewClient(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}
	generator, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	generator, err = llm.WithBreaker(generator, cfg.Middleware.CircuitBreaker)
	if err != nil {
		return nil, err
	}

	svc := &Service{log: log, embedder: embedder}

	var vectors interfaces.VectorStore
	milvusClient, err := milvus.GetClient(ctx, &cfg.Databases.Milvus)
	if err != nil {
		log.Warn(fmt.Sprintf("Milvus unavailable, keyword fallback only: %v", err))
	} else if err := milvusClient.EnsureCollection(ctx); err != nil {
		log.Warn(fmt.Sprintf("Milvus collection unavailable, keyword fallback only: %v", err))
	} else {
		store, err := vectorstore.NewMilvusStore(milvusClient, cfg.Databases.Milvus.Schema.CollectionName, log)
		if err != nil {
			return nil, err
		}
		vectors = store
		svc.milvusClient = milvusClient
	}

	loader := dataset.NewLoader(cfg.Retrieval.DatasetPath)
	keywords := retrievers.NewKeywordRetriever(loader, log)

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc.sessions = sessions

	queryLog, err := svc.newQueryLog(cfg)
	if err != nil {
		return nil, err
	}

	svc.pipeline = pipeline.NewAnswerPipeline(
		embedder, vectors, keywords, generator, sessions, queryLog,
		pipeline.Options{TopK: cfg.Retrieval.TopK, FallbackTopK: cfg.Retrieval.FallbackTopK},
		log,
	)
	return svc, nil
}

// newSessionStore builds the configured session backend.
func newSessionStore(ctx context.Context, cfg *config.AppConfig) (memory.Store, error) {
	ttl := time.Duration(cfg.Memory.SessionTTL) * time.Second
	switch cfg.Memory.Backend {
	case "redis":
		client, err := redis.GetClient(ctx, &cfg.Databases.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		return memory.NewRedisStore(client, cfg.Memory.WindowSize, ttl), nil
	case "memory", "":
		return memory.NewInMemoryStore(cfg.Memory.WindowSize, cfg.Memory.MaxSessions, ttl)
	default:
		return nil, fmt.Errorf("unknown memory backend: %s", cfg.Memory.Backend)
	}
}

// newQueryLog builds the query log sinks: always the JSON result file, plus
// Kafka when enabled.
func (s *Service) newQueryLog(cfg *config.AppConfig) (interfaces.QueryLog, error) {
	fileSink, err := resultlog.NewFileSink(cfg.Retrieval.ResultsPath)
	if err != nil {
		return nil, err
	}
	if !cfg.Databases.Kafka.Enabled {
		return fileSink, nil
	}

	kafkaClient, err := kafka.GetClient(&cfg.Databases.Kafka)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Kafka unavailable, query log file only: %v", err))
		return fileSink, nil
	}
	s.kafkaSink = resultlog.NewKafkaSink(kafka.NewQueryLogPublisher(kafkaClient))
	return resultlog.NewMultiSink(fileSink, s.kafkaSink), nil
}

// Ask answers one question within the given session.
func (s *Service) Ask(ctx context.Context, req pipeline.Request) (*pipeline.Answer, error) {
	return s.pipeline.Run(ctx, req)
}

// DetectCategory classifies a question without answering it.
func (s *Service) DetectCategory(question string) (models.Category, bool) {
	return classifier.Detect(question)
}

// Categories returns the known categories in their canonical order.
func (s *Service) Categories() []models.Category {
	return models.Categories()
}

// ClearMemory empties the session's conversation history.
func (s *Service) ClearMemory(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

// DeleteSession removes the session completely.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// Sessions lists the active sessions.
func (s *Service) Sessions(ctx context.Context) ([]memory.SessionStats, error) {
	return s.sessions.Sessions(ctx)
}

// Health probes the embedding backend and the optional vector backend and
// reports the active session count. The service itself is healthy as long as
// it is running; the fallback path has no dependencies.
func (s *Service) Health(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"service":         "ok",
		"embedder":        "ok",
		"vector_store":    "unavailable",
		"active_sessions": 0,
	}
	if _, err := s.embedder.Embed(ctx, "test"); err != nil {
		status["embedder"] = fmt.Sprintf("unhealthy: %v", err)
	}
	if s.milvusClient != nil {
		if err := s.milvusClient.HealthCheck(ctx); err != nil {
			status["vector_store"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			status["vector_store"] = "ok"
		}
	}
	if sessions, err := s.sessions.Sessions(ctx); err == nil {
		status["active_sessions"] = len(sessions)
	}
	return status
}

// Close releases external connections.
func (s *Service) Close() {
	if s.kafkaSink != nil {
		if err := s.kafkaSink.Close(); err != nil {
			s.log.Warn(fmt.Sprintf("Failed to close kafka sink: %v", err))
		}
	}
	if s.milvusClient != nil {
		s.milvusClient.Close()
	}
}
