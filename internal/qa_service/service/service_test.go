package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/internal/qa_service/rag/memory"
	"AdmissionOfficer/pkg/logger"
)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.1}, nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1}
	}
	return out, nil
}

func newHealthFixture(t *testing.T, embedder *stubEmbedder) *Service {
	t.Helper()
	logger.Init(logrus.ErrorLevel)
	sessions, err := memory.NewInMemoryStore(10, 16, 0)
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	return &Service{
		log:      logger.New("test", "", ""),
		sessions: sessions,
		embedder: embedder,
	}
}

func TestHealthReportsEmbedderAndSessions(t *testing.T) {
	svc := newHealthFixture(t, &stubEmbedder{})
	ctx := context.Background()

	for _, id := range []string{"s1", "s2"} {
		if err := svc.sessions.Append(ctx, id, models.Interaction{Question: "q", Answer: "a"}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	status := svc.Health(ctx)
	if status["service"] != "ok" {
		t.Errorf("service = %v, want ok", status["service"])
	}
	if status["embedder"] != "ok" {
		t.Errorf("embedder = %v, want ok", status["embedder"])
	}
	if status["active_sessions"] != 2 {
		t.Errorf("active_sessions = %v, want 2", status["active_sessions"])
	}
	// No Milvus client was wired, the service runs on the keyword fallback.
	if status["vector_store"] != "unavailable" {
		t.Errorf("vector_store = %v, want unavailable", status["vector_store"])
	}
}

func TestHealthReportsEmbedderFailure(t *testing.T) {
	svc := newHealthFixture(t, &stubEmbedder{err: errors.New("ollama unreachable")})

	status := svc.Health(context.Background())
	embedder, ok := status["embedder"].(string)
	if !ok || !strings.Contains(embedder, "ollama unreachable") {
		t.Errorf("embedder = %v, want unhealthy with cause", status["embedder"])
	}
	if status["service"] != "ok" {
		t.Errorf("service = %v, want ok even when the embedder is down", status["service"])
	}
}
