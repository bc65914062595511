package embedding

import (
	"context"
	"fmt"

	"docuhub/internal/errs"
	"docuhub/internal/rag/interfaces"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModel is an embedding client for the Google GenAI API.
type GeminiModel struct {
	model *genai.EmbeddingModel
	name  string
}

// NewGeminiModel creates a new Gemini embedding client.
func NewGeminiModel(apiKey, modelName string) (*GeminiModel, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiModel{
		model: client.EmbeddingModel(modelName),
		name:  modelName,
	}, nil
}

// Model returns the configured model identifier.
func (m *GeminiModel) Model() string { return m.name }

// Embed generates an embedding vector for a single text.
func (m *GeminiModel) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := m.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &errs.ProviderError{Provider: "gemini", Op: "embed", Err: err}
	}
	if err := ValidateDimension(res.Embedding.Values, m.name); err != nil {
		return nil, err
	}
	return res.Embedding.Values, nil
}

// EmbedBatch generates one embedding vector per input text using the
// batch endpoint.
func (m *GeminiModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	batch := m.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := m.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, &errs.ProviderError{Provider: "gemini", Op: "embed", Err: err}
	}

	if len(res.Embeddings) != len(texts) {
		return nil, &errs.ProviderError{
			Provider: "gemini",
			Op:       "embed",
			Err:      fmt.Errorf("expected %d embeddings, got %d", len(texts), len(res.Embeddings)),
		}
	}

	embeddings := make([][]float32, 0, len(res.Embeddings))
	for _, emb := range res.Embeddings {
		embeddings = append(embeddings, emb.Values)
	}

	if err := ValidateBatch(embeddings, m.name); err != nil {
		return nil, err
	}
	return embeddings, nil
}

var _ interfaces.EmbeddingModel = (*GeminiModel)(nil)
