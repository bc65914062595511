// Package llm wraps third-party generation providers behind the
// interfaces.LLM boundary used by the RAG assembler.
package llm

import (
	"fmt"

	"docuhub/internal/config"
	"docuhub/internal/rag/interfaces"
)

// NewModel creates the generation provider selected by configuration.
func NewModel(cfg *config.LLMConfig) (interfaces.LLM, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "gemini":
		return NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model)
	case "ollama":
		return NewOllama(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
