package embedding

import (
	"fmt"

	"AdmissionOfficer/internal/config"
)

// NewClient 是一个工厂函数，根据提供的配置创建并返回一个实现了 Embedding 接口的客户端。
func NewClient(cfg config.EmbeddingConfig) (Embedding, error) {
	switch ModelType(cfg.Provider) {
	case Ollama:
		return NewOllamaModel(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	case OpenAI:
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case Google:
		return NewGoogleModel(cfg.Gemini.APIKey, cfg.Gemini.Model)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
