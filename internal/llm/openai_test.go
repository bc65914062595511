package llm

import (
	"testing"

	"docuhub/internal/rag/interfaces"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

func TestBuildChatRequestDefaults(t *testing.T) {
	req := buildChatRequest("gpt-4o-mini", "hello", interfaces.GenerateOptions{})

	if req.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", req.Model)
	}
	if req.Temperature != nil {
		t.Errorf("temperature = %v, want nil so the provider default applies", *req.Temperature)
	}
	if req.MaxTokens != 0 {
		t.Errorf("max tokens = %d, want 0", req.MaxTokens)
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
		t.Errorf("messages = %+v, want a single user message", req.Messages)
	}
	if req.Messages[0].Role != openai.ChatMessageRoleUser {
		t.Errorf("role = %q, want user", req.Messages[0].Role)
	}
}

func TestBuildChatRequestOverrides(t *testing.T) {
	req := buildChatRequest("gpt-4o-mini", "hello", interfaces.GenerateOptions{
		Model:       "gpt-4o",
		Temperature: 0.3,
		MaxTokens:   256,
	})

	if req.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", req.Model)
	}
	if req.Temperature == nil || *req.Temperature != 0.3 {
		t.Errorf("temperature = %v, want pointer to 0.3", req.Temperature)
	}
	if req.MaxTokens != 256 {
		t.Errorf("max tokens = %d, want 256", req.MaxTokens)
	}
}
