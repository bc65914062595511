package llm

import (
	"context"
	"fmt"

	"docuhub/internal/errs"
	"docuhub/internal/rag/interfaces"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is a generation client for the Google GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a new Gemini generation client.
func NewGemini(apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate produces a completion for the prompt.
func (g *Gemini) Generate(ctx context.Context, prompt string, opts interfaces.GenerateOptions) (string, error) {
	name := g.model
	if opts.Model != "" {
		name = opts.Model
	}

	model := g.client.GenerativeModel(name)
	if opts.Temperature > 0 {
		model.SetTemperature(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &errs.ProviderError{Provider: "gemini", Op: "generate", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &errs.ProviderError{Provider: "gemini", Op: "generate", Err: fmt.Errorf("no candidates returned")}
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out, nil
}

var _ interfaces.LLM = (*Gemini)(nil)
