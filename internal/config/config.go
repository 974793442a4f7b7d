package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldConfig 定义了 Milvus 集合中字段的配置。
type FieldConfig struct {
	Name         string `yaml:"name"`                // 字段名称
	DataType     string `yaml:"dataType"`            // 字段数据类型 (例如: "Int64", "VarChar", "FloatVector")
	IsPrimaryKey bool   `yaml:"isPrimaryKey"`        // 是否为主键
	IsAutoID     bool   `yaml:"isAutoID"`            // 是否自动生成ID
	Dim          int    `yaml:"dim,omitempty"`       // 向量维度 (仅适用于向量类型)
	MaxLength    int    `yaml:"maxLength,omitempty"` // 最大长度 (仅适用于VarChar类型)
}

// IndexConfig 定义了 Milvus 集合中索引的配置。
type IndexConfig struct {
	FieldName  string                 `yaml:"fieldName"`  // 要创建索引的字段名称
	IndexType  string                 `yaml:"indexType"`  // 索引类型 (例如: "IVF_FLAT", "HNSW")
	MetricType string                 `yaml:"metricType"` // 相似度度量类型 (例如: "L2", "COSINE")
	Params     map[string]interface{} `yaml:"params"`     // 索引参数 (例如: {"nlist": 128})
}

// SchemaConfig 定义了 Milvus 集合的 Schema 配置。
type SchemaConfig struct {
	CollectionName string        `yaml:"collectionName"` // 集合名称
	Description    string        `yaml:"description"`    // 集合描述
	VectorField    string        `yaml:"vectorField"`    // 向量字段名称
	Fields         []FieldConfig `yaml:"fields"`         // 字段配置列表
	Index          IndexConfig   `yaml:"index"`          // 索引配置
}

// MilvusConfig 定义了 Milvus 数据库的连接和 Schema 配置。
type MilvusConfig struct {
	Address string       `yaml:"address"` // Milvus 服务地址
	Schema  SchemaConfig `yaml:"schema"`  // Milvus 集合 Schema 配置
}

// RedisConfig 定义了 Redis 数据库的连接配置。
type RedisConfig struct {
	Address  string `yaml:"address"`  // Redis 服务器地址 (例如: "localhost:6379")
	Password string `yaml:"password"` // Redis 密码
	DB       int    `yaml:"db"`       // Redis 数据库编号
}

// KafkaConfig 定义了 Kafka 消息队列的连接配置。
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"` // 是否把查询日志镜像到 Kafka
	Brokers []string `yaml:"brokers"` // Kafka Broker 地址列表
	Topic   string   `yaml:"topic"`   // 查询日志主题
}

// DatabaseConfigs 包含所有数据库的配置。
type DatabaseConfigs struct {
	Milvus MilvusConfig `yaml:"milvus"` // Milvus 数据库配置
	Redis  RedisConfig  `yaml:"redis"`  // Redis 数据库配置
	Kafka  KafkaConfig  `yaml:"kafka"`  // Kafka 消息队列配置
}

// OllamaConfig 定义了 Ollama 本地模型服务的配置。
type OllamaConfig struct {
	BaseURL string `yaml:"baseURL"` // Ollama 服务地址，空值表示 http://localhost:11434
	Model   string `yaml:"model"`   // 模型名称
}

// OpenAIConfig 定义了 OpenAI 模型的配置。
type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"` // OpenAI 的 API 密钥
	Model  string `yaml:"model"`  // 模型名称
}

// GeminiConfig 定义了 Google Gemini 模型的配置。
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"` // Gemini 的 API 密钥
	Model  string `yaml:"model"`  // 模型名称
}

// LLMConfig 包含了不同 LLM 提供商的配置。
type LLMConfig struct {
	Provider string       `yaml:"provider"` // LLM 提供商 (例如: "ollama", "openai", "gemini")
	Ollama   OllamaConfig `yaml:"ollama"`   // Ollama 模型配置
	OpenAI   OpenAIConfig `yaml:"openai"`   // OpenAI 模型配置
	Gemini   GeminiConfig `yaml:"gemini"`   // Gemini 模型配置
}

// EmbeddingConfig 包含了不同 Embedding 提供商的配置。
type EmbeddingConfig struct {
	Provider string       `yaml:"provider"` // Embedding 提供商 (例如: "ollama", "openai", "gemini")
	Ollama   OllamaConfig `yaml:"ollama"`   // Ollama 模型配置
	OpenAI   OpenAIConfig `yaml:"openai"`   // OpenAI 模型配置
	Gemini   GeminiConfig `yaml:"gemini"`   // Gemini 模型配置
}

// RetrievalConfig 定义了检索管线的配置。
type RetrievalConfig struct {
	DatasetPath  string `yaml:"datasetPath"`  // 平面问答数据集 (JSON) 的路径
	TopK         int    `yaml:"topK"`         // 向量检索返回的候选数
	FallbackTopK int    `yaml:"fallbackTopK"` // 关键词兜底检索返回的候选数
	ResultsPath  string `yaml:"resultsPath"`  // 查询结果日志文件路径
}

// MemoryConfig 定义了会话记忆的配置。
type MemoryConfig struct {
	Backend     string `yaml:"backend"`     // 会话存储后端, "memory" 或 "redis"
	WindowSize  int    `yaml:"windowSize"`  // 每个会话保留的问答轮数
	MaxSessions int    `yaml:"maxSessions"` // 进程内后端最多保留的会话数
	SessionTTL  int    `yaml:"sessionTTL"`  // 会话空闲过期时间（秒），0 表示不过期
}

// MiddlewareConfig 包含所有中间件的配置。
type MiddlewareConfig struct {
	RateLimiter    RateLimiterConfig    `yaml:"rateLimiter"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuitBreaker"`
}

// RateLimiterConfig 定义了限流器的配置。
type RateLimiterConfig struct {
	Enabled        bool                 `yaml:"enabled"`
	Algorithm      string               `yaml:"algorithm"` // 支持: "tokenBucket", "slidingCounter"
	SlidingCounter SlidingCounterConfig `yaml:"slidingCounter"`
	TokenBucket    TokenBucketConfig    `yaml:"tokenBucket"`
}

// SlidingCounterConfig 定义了滑动窗口计数器算法的配置。
type SlidingCounterConfig struct {
	Limit      int    `yaml:"limit"`
	Window     string `yaml:"window"` // 例如: "1m", "30s"
	NumBuckets int    `yaml:"numBuckets"`
}

// TokenBucketConfig 定义了令牌桶算法的配置。
type TokenBucketConfig struct {
	Rate     float64 `yaml:"rate"` // 每秒速率
	Capacity int     `yaml:"capacity"`
}

// CircuitBreakerConfig 定义了保护生成后端的熔断器配置。
type CircuitBreakerConfig struct {
	Enabled          bool   `yaml:"enabled"`
	FailureThreshold uint32 `yaml:"failureThreshold"`
	SuccessThreshold uint32 `yaml:"successThreshold"`
	Timeout          string `yaml:"timeout"` // 例如: "30s"
}

// AuthConfig 用于配置 API 认证。
type AuthConfig struct {
	JwtSecret string `yaml:"jwtSecret"` // JWT 密钥，空值表示不启用认证
}

// ServerConfig 定义了 HTTP 服务的配置。
type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP 监听地址 (例如: ":8000")
}

// AppInfo 对应 'app' 部分，包含应用程序的基本信息。
type AppInfo struct {
	Name        string `yaml:"name"`        // 应用程序名称
	Version     string `yaml:"version"`     // 应用程序版本
	Environment string `yaml:"environment"` // 运行环境 (例如: "development", "production")
}

// LoggerConfig 定义了日志记录器的配置。
type LoggerConfig struct {
	Level string `yaml:"level"` // 日志级别 (例如: "info", "debug", "warn", "error")
}

// AppConfig 是整个 YAML 文件的根结构，包含了应用程序的所有配置。
type AppConfig struct {
	App        AppInfo          `yaml:"app"`        // 应用程序信息
	Server     ServerConfig     `yaml:"server"`     // HTTP 服务配置
	Auth       AuthConfig       `yaml:"auth"`       // 认证配置
	Middleware MiddlewareConfig `yaml:"middleware"` // 中间件配置
	LLM        LLMConfig        `yaml:"llm"`        // LLM 配置部分
	Embedding  EmbeddingConfig  `yaml:"embedding"`  // Embedding 配置部分
	Retrieval  RetrievalConfig  `yaml:"retrieval"`  // 检索管线配置
	Memory     MemoryConfig     `yaml:"memory"`     // 会话记忆配置
	Logger     LoggerConfig     `yaml:"logger"`     // 日志记录器配置
	Databases  DatabaseConfigs  `yaml:"databases"`  // 数据库配置
}

// LoadConfig 从指定路径读取并解析 YAML 配置文件，同时填充缺省值。
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("无法解析配置文件 %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults 为未配置的字段填充缺省值。
func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Retrieval.DatasetPath == "" {
		c.Retrieval.DatasetPath = "data.json"
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 5
	}
	if c.Retrieval.FallbackTopK <= 0 {
		c.Retrieval.FallbackTopK = 3
	}
	if c.Retrieval.ResultsPath == "" {
		c.Retrieval.ResultsPath = "rag_results/results.json"
	}
	if c.Memory.Backend == "" {
		c.Memory.Backend = "memory"
	}
	if c.Memory.WindowSize <= 0 {
		c.Memory.WindowSize = 10
	}
	if c.Memory.MaxSessions <= 0 {
		c.Memory.MaxSessions = 1024
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Databases.Milvus.Schema.CollectionName == "" {
		c.Databases.Milvus.Schema.CollectionName = "qa_knowledge"
	}
	if c.Databases.Kafka.Topic == "" {
		c.Databases.Kafka.Topic = "qa_query_logs"
	}
}
