// Package config loads server and CLI configuration from a JSON file, the environment and defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Environment variable names
const (
	EnvProvider            = "LLM_PROVIDER"
	EnvAwanAPIKey          = "AWAN_API_KEY"
	EnvOpenRouterAPIKey    = "OPENROUTER_API_KEY"
	EnvOpenRouterPublicKey = "NEXT_PUBLIC_OPENROUTER_API_KEY"
	EnvGeminiAPIKey        = "GEMINI_API_KEY"
	EnvChatModel           = "CHAT_MODEL"
	EnvSuggestionsModel    = "SUGGESTIONS_MODEL"
	EnvAppURL              = "APP_URL"
	EnvPort                = "PORT"
	EnvLogLevel            = "LOG_LEVEL"
	EnvUseBrowser          = "USE_BROWSER"
	EnvTemplate            = "RESUME_TEMPLATE"
	EnvMaxUploadMB         = "MAX_UPLOAD_MB"
)

// Defaults
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultTemplate    = "modern"
	DefaultMaxUploadMB = 10
	DefaultAppTitle    = "Resume Builder"
)

// Config represents the service configuration.
// All fields are optional in the file; blanks are filled from the environment, then defaults.
type Config struct {
	// LLM
	Provider         string `json:"provider,omitempty"` // awan, openrouter or gemini; empty mixes Awan and OpenRouter
	AwanAPIKey       string `json:"awan_api_key,omitempty"`
	OpenRouterAPIKey string `json:"openrouter_api_key,omitempty"`
	GeminiAPIKey     string `json:"gemini_api_key,omitempty"`
	ChatModel        string `json:"chat_model,omitempty"`        // chat and resume generation
	SuggestionsModel string `json:"suggestions_model,omitempty"` // resume suggestions
	AppURL           string `json:"app_url,omitempty"`           // sent as HTTP-Referer to OpenRouter

	// Server
	Port        int    `json:"port,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	MaxUploadMB int    `json:"max_upload_mb,omitempty"`

	// Behavior
	UseBrowser bool   `json:"use_browser,omitempty"` // headless browser fallback for job URLs
	Template   string `json:"template,omitempty"`    // default preview template
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:        DefaultPort,
		LogLevel:    DefaultLogLevel,
		MaxUploadMB: DefaultMaxUploadMB,
		Template:    DefaultTemplate,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv reads configuration from environment variables through getenv.
// Unparseable numbers and booleans are ignored.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		Provider:         strings.ToLower(strings.TrimSpace(getenv(EnvProvider))),
		AwanAPIKey:       getenv(EnvAwanAPIKey),
		OpenRouterAPIKey: getenv(EnvOpenRouterAPIKey),
		GeminiAPIKey:     getenv(EnvGeminiAPIKey),
		ChatModel:        getenv(EnvChatModel),
		SuggestionsModel: getenv(EnvSuggestionsModel),
		AppURL:           getenv(EnvAppURL),
		LogLevel:         getenv(EnvLogLevel),
		Template:         getenv(EnvTemplate),
	}
	if cfg.OpenRouterAPIKey == "" {
		cfg.OpenRouterAPIKey = getenv(EnvOpenRouterPublicKey)
	}
	if port, err := strconv.Atoi(getenv(EnvPort)); err == nil {
		cfg.Port = port
	}
	if mb, err := strconv.Atoi(getenv(EnvMaxUploadMB)); err == nil {
		cfg.MaxUploadMB = mb
	}
	if useBrowser, err := strconv.ParseBool(getenv(EnvUseBrowser)); err == nil {
		cfg.UseBrowser = useBrowser
	}
	return cfg
}

// Load builds the effective configuration: the file at path (optional), then the
// environment, then defaults. The result is validated.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	merged := cfg.MergeWithDefaults(FromEnv(getenv))
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Booleans merge with OR since unset cannot be told apart from false.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	for _, f := range []struct {
		dst *string
		src string
	}{
		{&result.Provider, defaults.Provider},
		{&result.AwanAPIKey, defaults.AwanAPIKey},
		{&result.OpenRouterAPIKey, defaults.OpenRouterAPIKey},
		{&result.GeminiAPIKey, defaults.GeminiAPIKey},
		{&result.ChatModel, defaults.ChatModel},
		{&result.SuggestionsModel, defaults.SuggestionsModel},
		{&result.AppURL, defaults.AppURL},
		{&result.LogLevel, defaults.LogLevel},
		{&result.Template, defaults.Template},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadMB == 0 {
		result.MaxUploadMB = defaults.MaxUploadMB
	}
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser

	return result
}

// Validate checks that the configuration has valid values.
// Missing API keys are not an error: the affected features degrade at request time.
func (c *Config) Validate() error {
	switch llm.Provider(c.Provider) {
	case "", llm.ProviderAwan, llm.ProviderOpenRouter, llm.ProviderGemini:
	default:
		return fmt.Errorf("config error: unknown provider %q (want awan, openrouter or gemini)", c.Provider)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid log_level %q", c.LogLevel)
		}
	}
	switch c.Template {
	case "", "modern", "classic", "minimal":
	default:
		return fmt.Errorf("config error: unknown template %q", c.Template)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MaxUploadBytes is the multipart upload limit
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// ChatLLM returns the client settings for chat and resume generation.
// Without an explicit provider this is Awan.
func (c *Config) ChatLLM() *llm.Config {
	var cfg *llm.Config
	switch llm.Provider(c.Provider) {
	case llm.ProviderGemini:
		cfg = llm.DefaultGeminiConfig(c.GeminiAPIKey)
	case llm.ProviderOpenRouter:
		cfg = llm.DefaultOpenRouterConfig(c.OpenRouterAPIKey, c.AppURL)
		cfg.AppTitle = DefaultAppTitle
		cfg.Temperature = llm.DefaultTemperature
		cfg.MaxTokens = llm.DefaultMaxTokens
	default:
		cfg = llm.DefaultAwanConfig(c.AwanAPIKey)
	}
	return cfg.WithModel(c.ChatModel)
}

// SuggestionsLLM returns the client settings for resume suggestions.
// Without an explicit provider this is OpenRouter.
func (c *Config) SuggestionsLLM() *llm.Config {
	var cfg *llm.Config
	switch llm.Provider(c.Provider) {
	case llm.ProviderGemini:
		cfg = llm.DefaultGeminiConfig(c.GeminiAPIKey)
	case llm.ProviderAwan:
		cfg = llm.DefaultAwanConfig(c.AwanAPIKey)
	default:
		cfg = llm.DefaultOpenRouterConfig(c.OpenRouterAPIKey, c.AppURL)
		cfg.AppTitle = DefaultAppTitle
	}
	return cfg.WithModel(c.SuggestionsModel)
}
