package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: "qa"
llm:
  provider: "ollama"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Addr != ":8000" {
		t.Errorf("Server.Addr = %q, want :8000", cfg.Server.Addr)
	}
	if cfg.Retrieval.TopK != 5 || cfg.Retrieval.FallbackTopK != 3 {
		t.Errorf("Retrieval = %+v", cfg.Retrieval)
	}
	if cfg.Retrieval.DatasetPath != "data.json" {
		t.Errorf("DatasetPath = %q", cfg.Retrieval.DatasetPath)
	}
	if cfg.Memory.Backend != "memory" || cfg.Memory.WindowSize != 10 || cfg.Memory.MaxSessions != 1024 {
		t.Errorf("Memory = %+v", cfg.Memory)
	}
	if cfg.Databases.Milvus.Schema.CollectionName != "qa_knowledge" {
		t.Errorf("CollectionName = %q", cfg.Databases.Milvus.Schema.CollectionName)
	}
	if cfg.Databases.Kafka.Topic != "qa_query_logs" {
		t.Errorf("Kafka.Topic = %q", cfg.Databases.Kafka.Topic)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9100"
retrieval:
  topK: 8
memory:
  backend: "redis"
  windowSize: 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Retrieval.TopK != 8 {
		t.Errorf("TopK = %d", cfg.Retrieval.TopK)
	}
	if cfg.Memory.Backend != "redis" || cfg.Memory.WindowSize != 4 {
		t.Errorf("Memory = %+v", cfg.Memory)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
