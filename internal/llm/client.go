package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Client is an abstraction over LLM providers
type Client interface {
	// Chat sends a system and user message pair and returns the provider response
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	// Model returns the model identifier requests are sent with
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// ChatRequest is a single-turn conversation
type ChatRequest struct {
	System string
	User   string
}

// ChatResponse carries the provider's JSON body untouched plus the first choice's text.
// Content is empty when the body has no completion choice; callers decide whether that is an error.
type ChatResponse struct {
	Raw     json.RawMessage
	Content string
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		return nil, fmt.Errorf("llm config is required")
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderAwan, ProviderOpenRouter:
		return NewCompletionsClient(config)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", config.Provider)
	}
}

// message is one entry of an OpenAI-compatible messages array
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionChoice struct {
	Index        int     `json:"index"`
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

type completionResponse struct {
	ID      string             `json:"id,omitempty"`
	Object  string             `json:"object,omitempty"`
	Created int64              `json:"created,omitempty"`
	Model   string             `json:"model,omitempty"`
	Choices []completionChoice `json:"choices"`
}

// firstChoiceContent returns choices[0].message.content, or "" if the body lacks it
func firstChoiceContent(raw []byte) string {
	var out completionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return ""
	}
	if len(out.Choices) == 0 {
		return ""
	}
	return out.Choices[0].Message.Content
}
