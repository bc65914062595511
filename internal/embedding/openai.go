package embedding

import (
	"context"
	"fmt"

	"docuhub/internal/errs"
	"docuhub/internal/rag/interfaces"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAIModel is an embedding client for the OpenAI API.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIModel creates a new OpenAI embedding client.
func NewOpenAIModel(apiKey, modelName string) (*OpenAIModel, error) {
	config := openai.DefaultConfig(apiKey)
	client := openai.NewClientWithConfig(config)
	return &OpenAIModel{client: client, model: modelName}, nil
}

// Model returns the configured model identifier.
func (m *OpenAIModel) Model() string { return m.model }

// Embed generates an embedding vector for a single text.
func (m *OpenAIModel) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch generates one embedding vector per input text. Returned
// vectors are dimension-validated before they reach the caller.
func (m *OpenAIModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	req := openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(m.model),
	}

	resp, err := m.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, &errs.ProviderError{Provider: "openai", Op: "embed", Err: err}
	}

	if len(resp.Data) != len(texts) {
		return nil, &errs.ProviderError{
			Provider: "openai",
			Op:       "embed",
			Err:      fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data)),
		}
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		embeddings[i] = d.Embedding
	}

	if err := ValidateBatch(embeddings, m.model); err != nil {
		return nil, err
	}
	return embeddings, nil
}

var _ interfaces.EmbeddingModel = (*OpenAIModel)(nil)
