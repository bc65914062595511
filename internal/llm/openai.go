package llm

import (
	"docuhub/internal/errs"
	"docuhub/internal/rag/interfaces"

	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAI is a generation client for the OpenAI chat completion API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a new OpenAI generation client. model is the
// default used when a request does not override it.
func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	config := openai.DefaultConfig(apiKey)
	client := openai.NewClientWithConfig(config)
	return &OpenAI{client: client, model: model}, nil
}

// buildChatRequest assembles the completion request. Zero-valued
// options are left unset so the provider applies its own defaults; in
// particular Temperature stays nil rather than pinned to 0.
func buildChatRequest(defaultModel, prompt string, opts interfaces.GenerateOptions) openai.ChatCompletionRequest {
	model := defaultModel
	if opts.Model != "" {
		model = opts.Model
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if opts.Temperature > 0 {
		temperature := opts.Temperature
		req.Temperature = &temperature
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	return req
}

// Generate produces a completion for the prompt.
func (o *OpenAI) Generate(ctx context.Context, prompt string, opts interfaces.GenerateOptions) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, buildChatRequest(o.model, prompt, opts))
	if err != nil {
		return "", &errs.ProviderError{Provider: "openai", Op: "generate", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &errs.ProviderError{Provider: "openai", Op: "generate", Err: fmt.Errorf("no choices returned")}
	}
	return resp.Choices[0].Message.Content, nil
}

var _ interfaces.LLM = (*OpenAI)(nil)
