package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"docuhub/internal/errs"
	"docuhub/internal/rag/interfaces"

	ollama "github.com/ollama/ollama/api"
)

// OllamaModel is an embedding client for a local or remote Ollama
// instance.
type OllamaModel struct {
	client *ollama.Client
	model  string
}

// NewOllamaModel creates a new Ollama embedding client. An empty
// baseURL defaults to the standard local endpoint.
func NewOllamaModel(model, baseURL string) (*OllamaModel, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	hc := &http.Client{
		Timeout: 120 * time.Second,
	}

	return &OllamaModel{client: ollama.NewClient(parsedURL, hc), model: model}, nil
}

// Model returns the configured model identifier.
func (m *OllamaModel) Model() string { return m.model }

// Embed generates an embedding vector for a single text.
func (m *OllamaModel) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates one embedding vector per input text.
func (m *OllamaModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	input := make([]any, len(texts))
	for i, t := range texts {
		input[i] = t
	}

	resp, err := m.client.Embed(ctx, &ollama.EmbedRequest{
		Model: m.model,
		Input: input,
	})
	if err != nil {
		return nil, &errs.ProviderError{Provider: "ollama", Op: "embed", Err: err}
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, &errs.ProviderError{
			Provider: "ollama",
			Op:       "embed",
			Err:      fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings)),
		}
	}

	if err := ValidateBatch(resp.Embeddings, m.model); err != nil {
		return nil, err
	}
	return resp.Embeddings, nil
}

var _ interfaces.EmbeddingModel = (*OllamaModel)(nil)
