package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// maxResponseBytes bounds how much of a provider response is read
const maxResponseBytes = 10 << 20

// CompletionsClient implements Client for OpenAI-compatible chat completions endpoints
type CompletionsClient struct {
	config *Config
	http   *http.Client
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// NewCompletionsClient creates a client for config.BaseURL + "/chat/completions"
func NewCompletionsClient(config *Config) (*CompletionsClient, error) {
	return NewCompletionsClientWithHTTP(config, &http.Client{Timeout: config.timeout()})
}

// NewCompletionsClientWithHTTP is NewCompletionsClient with a caller-supplied HTTP client
func NewCompletionsClientWithHTTP(config *Config, httpClient *http.Client) (*CompletionsClient, error) {
	if config.APIKey == "" {
		return nil, errors.WithStack(&MissingKeyError{Provider: config.Provider})
	}
	if config.BaseURL == "" {
		return nil, errors.Errorf("%s base URL is not configured", config.Provider)
	}
	return &CompletionsClient{config: config, http: httpClient}, nil
}

// Chat posts the conversation and returns the raw provider body.
// Non-2xx responses are logged and returned as *UpstreamError with the body text.
func (c *CompletionsClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body := completionRequest{
		Model:       c.config.Model,
		Messages:    buildMessages(req),
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode completion request")
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	if c.config.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.config.Referer)
	}
	if c.config.AppTitle != "" {
		httpReq.Header.Set("X-Title", c.config.AppTitle)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "%s request failed", c.config.Provider)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s response", c.config.Provider)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().
			Str("provider", string(c.config.Provider)).
			Int("status", resp.StatusCode).
			Str("body", string(raw)).
			Msg("completion provider error")
		return nil, errors.WithStack(&UpstreamError{
			Provider:   c.config.Provider,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		})
	}

	if !json.Valid(raw) {
		return nil, errors.Errorf("%s returned a non-JSON body", c.config.Provider)
	}

	return &ChatResponse{
		Raw:     json.RawMessage(raw),
		Content: firstChoiceContent(raw),
	}, nil
}

// Model returns the configured model identifier
func (c *CompletionsClient) Model() string {
	return c.config.Model
}

// Close is a no-op; the HTTP client holds no per-client resources
func (c *CompletionsClient) Close() error {
	return nil
}

func buildMessages(req ChatRequest) []message {
	msgs := make([]message, 0, 2)
	if req.System != "" {
		msgs = append(msgs, message{Role: "system", Content: req.System})
	}
	msgs = append(msgs, message{Role: "user", Content: req.User})
	return msgs
}
