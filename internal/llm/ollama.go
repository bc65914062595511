package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docuhub/internal/errs"
	"docuhub/internal/rag/interfaces"

	ollama "github.com/ollama/ollama/api"
)

// Ollama is a generation client for a local or remote Ollama instance.
type Ollama struct {
	client *ollama.Client
	model  string
}

// NewOllama creates a new Ollama generation client. An empty baseURL
// defaults to the standard local endpoint.
func NewOllama(model, baseURL string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	hc := &http.Client{Timeout: 300 * time.Second}
	return &Ollama{client: ollama.NewClient(parsedURL, hc), model: model}, nil
}

// Generate produces a completion for the prompt.
func (o *Ollama) Generate(ctx context.Context, prompt string, opts interfaces.GenerateOptions) (string, error) {
	model := o.model
	if opts.Model != "" {
		model = opts.Model
	}

	options := map[string]any{}
	if opts.Temperature > 0 {
		options["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		options["num_predict"] = opts.MaxTokens
	}

	stream := false
	req := &ollama.GenerateRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: options,
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp ollama.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", &errs.ProviderError{Provider: "ollama", Op: "generate", Err: err}
	}
	return sb.String(), nil
}

var _ interfaces.LLM = (*Ollama)(nil)
