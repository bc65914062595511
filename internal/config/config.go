package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic information about the running application.
type AppInfo struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"` // "development" or "production"
}

// LoggerConfig controls the structured logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address"` // e.g. ":8080"
}

// MySQLConfig holds the relational store connection settings.
type MySQLConfig struct {
	Address         string `yaml:"address"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	MaxOpenConns    int    `yaml:"maxOpenConns"`
	MaxIdleConns    int    `yaml:"maxIdleConns"`
	ConnMaxLifetime int    `yaml:"connMaxLifetime"` // seconds
}

// RedisConfig holds the job-status cache connection settings.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MilvusConfig holds the vector store connection settings.
type MilvusConfig struct {
	Address    string `yaml:"address"`
	Collection string `yaml:"collection"`
	Dim        int    `yaml:"dim"` // embedding dimension the collection was created with
}

// MinIOConfig holds the object storage settings for uploaded originals.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Secure    bool   `yaml:"secure"`
}

// KafkaConfig holds the processing queue settings.
type KafkaConfig struct {
	Brokers      []string `yaml:"brokers"`
	ProcessTopic string   `yaml:"processTopic"`
	GroupID      string   `yaml:"groupID"`
	Workers      int      `yaml:"workers"` // concurrent pipeline runs
}

// DatabaseConfigs groups every backing store.
type DatabaseConfigs struct {
	MySQL  MySQLConfig  `yaml:"mysql"`
	Redis  RedisConfig  `yaml:"redis"`
	Milvus MilvusConfig `yaml:"milvus"`
	MinIO  MinIOConfig  `yaml:"minio"`
	Kafka  KafkaConfig  `yaml:"kafka"`
}

// ProviderConfig holds credentials for one model provider.
type ProviderConfig struct {
	APIKey  string `yaml:"apiKey"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"baseURL,omitempty"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider string         `yaml:"provider"` // "openai", "gemini" or "ollama"
	OpenAI   ProviderConfig `yaml:"openai"`
	Gemini   ProviderConfig `yaml:"gemini"`
	Ollama   ProviderConfig `yaml:"ollama"`
}

// LLMConfig selects and configures the generation provider.
type LLMConfig struct {
	Provider string         `yaml:"provider"`
	OpenAI   ProviderConfig `yaml:"openai"`
	Gemini   ProviderConfig `yaml:"gemini"`
	Ollama   ProviderConfig `yaml:"ollama"`
}

// ChunkingConfig holds the default chunker settings used by the
// indexing pipeline. Values are token budgets, not characters.
type ChunkingConfig struct {
	Strategy        string `yaml:"strategy"` // "paragraph" or "sentence"
	ChunkSize       int    `yaml:"chunkSize"`
	ChunkOverlap    int    `yaml:"chunkOverlap"`
	PreserveHeaders bool   `yaml:"preserveHeaders"`
}

// ValidationConfig holds the converted-content acceptance thresholds.
type ValidationConfig struct {
	MinLength   int  `yaml:"minLength"`
	MaxLength   int  `yaml:"maxLength"`
	RequireText bool `yaml:"requireText"`
}

// SearchConfig holds the retrieval defaults applied when a request
// omits them.
type SearchConfig struct {
	MatchThreshold float64 `yaml:"matchThreshold"`
	MatchCount     int     `yaml:"matchCount"`
}

// RateLimiterConfig controls the per-instance request limiter.
type RateLimiterConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Rate     float64 `yaml:"rate"` // tokens per second
	Capacity int     `yaml:"capacity"`
}

// PipelineConfig groups the ingestion pipeline settings.
type PipelineConfig struct {
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Validation ValidationConfig `yaml:"validation"`
	Search     SearchConfig     `yaml:"search"`
}

// AppConfig is the root of the YAML configuration file. It is loaded
// once in main and passed by pointer to every component that needs it.
type AppConfig struct {
	App         AppInfo           `yaml:"app"`
	Server      ServerConfig      `yaml:"server"`
	Logger      LoggerConfig      `yaml:"logger"`
	Databases   DatabaseConfigs   `yaml:"databases"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	LLM         LLMConfig         `yaml:"llm"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	RateLimiter RateLimiterConfig `yaml:"rateLimiter"`
}

// LoadConfig reads and parses the YAML configuration file at path.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file '%s': %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Pipeline.Chunking.Strategy == "" {
		c.Pipeline.Chunking.Strategy = "paragraph"
	}
	if c.Pipeline.Chunking.ChunkSize == 0 {
		c.Pipeline.Chunking.ChunkSize = 512
	}
	if c.Pipeline.Validation.MinLength == 0 {
		c.Pipeline.Validation.MinLength = 10
	}
	if c.Pipeline.Search.MatchThreshold == 0 {
		c.Pipeline.Search.MatchThreshold = 0.7
	}
	if c.Pipeline.Search.MatchCount == 0 {
		c.Pipeline.Search.MatchCount = 10
	}
	if c.Databases.Kafka.Workers == 0 {
		c.Databases.Kafka.Workers = 4
	}
	if c.Databases.Kafka.GroupID == "" {
		c.Databases.Kafka.GroupID = "docuhub-pipeline"
	}
}
