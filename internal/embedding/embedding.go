// Package embedding wraps third-party embedding providers behind a
// single interface and validates returned vector dimensions before
// they reach storage.
package embedding

import (
	"fmt"

	"docuhub/internal/config"
	"docuhub/internal/rag/interfaces"
)

// NewModel creates the embedding provider selected by configuration.
func NewModel(cfg *config.EmbeddingConfig) (interfaces.EmbeddingModel, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "gemini":
		return NewGeminiModel(cfg.Gemini.APIKey, cfg.Gemini.Model)
	case "ollama":
		return NewOllamaModel(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
