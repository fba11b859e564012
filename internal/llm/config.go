// Package llm provides chat-completion clients for the providers the resume builder talks to.
// Awan and OpenRouter speak the OpenAI-compatible chat completions protocol; Gemini goes
// through the Google generative AI SDK.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderAwan is the Awan LLM completions API, used for chat and resume generation
	ProviderAwan Provider = "awan"
	// ProviderOpenRouter is the OpenRouter completions API, used for resume suggestions
	ProviderOpenRouter Provider = "openrouter"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Provider endpoints and models
const (
	AwanBaseURL       = "https://api.awanllm.com/v1"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	DefaultAwanModel       = "Meta-Llama-3.1-70B-Instruct"
	DefaultOpenRouterModel = "anthropic/claude-3-opus:beta"
	DefaultGeminiModel     = "gemini-2.5-flash"

	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
	DefaultTimeout     = 60 * time.Second
)

// Config holds the provider settings for one client.
// Zero Temperature and MaxTokens are left out of the request so the provider defaults apply.
type Config struct {
	Provider    Provider
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
	// Referer and AppTitle are sent as HTTP-Referer and X-Title (OpenRouter attribution)
	Referer  string
	AppTitle string
	Timeout  time.Duration
}

// DefaultAwanConfig returns the configuration used by the chat and generation endpoints
func DefaultAwanConfig(apiKey string) *Config {
	return &Config{
		Provider:    ProviderAwan,
		BaseURL:     AwanBaseURL,
		Model:       DefaultAwanModel,
		APIKey:      apiKey,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
	}
}

// DefaultOpenRouterConfig returns the configuration used for resume suggestions.
// Suggestions rely on the provider's sampling defaults.
func DefaultOpenRouterConfig(apiKey, referer string) *Config {
	return &Config{
		Provider: ProviderOpenRouter,
		BaseURL:  OpenRouterBaseURL,
		Model:    DefaultOpenRouterModel,
		APIKey:   apiKey,
		Referer:  referer,
		Timeout:  DefaultTimeout,
	}
}

// DefaultGeminiConfig returns a Gemini configuration with the chat sampling settings
func DefaultGeminiConfig(apiKey string) *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultGeminiModel,
		APIKey:      apiKey,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
	}
}

// WithModel returns a copy of the config using model, or the config itself if model is empty
func (c *Config) WithModel(model string) *Config {
	if model == "" {
		return c
	}
	cp := *c
	cp.Model = model
	return &cp
}

// WithBaseURL returns a copy of the config pointed at another endpoint
func (c *Config) WithBaseURL(baseURL string) *Config {
	if baseURL == "" {
		return c
	}
	cp := *c
	cp.BaseURL = baseURL
	return &cp
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
