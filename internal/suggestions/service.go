package suggestions

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

// Service requests resume suggestions from an LLM reviewer.
// A Service without a client is disabled and always returns empty suggestions.
type Service struct {
	client llm.Client
}

// NewService creates a suggestion service; client may be nil
func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// NewServiceFromConfig builds the provider client from config.
// A missing API key disables suggestions instead of failing.
func NewServiceFromConfig(ctx context.Context, config *llm.Config) (*Service, error) {
	client, err := llm.NewClient(ctx, config)
	if err != nil {
		if llm.IsMissingKey(err) {
			log.Warn().Str("provider", string(config.Provider)).Msg("API key not found, AI suggestions are disabled")
			return NewService(nil), nil
		}
		return nil, err
	}
	return NewService(client), nil
}

// Enabled reports whether the service has a provider client
func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

// GetAISuggestions asks the reviewer to critique resumeText for targetRole.
// Suggestions are optional: every failure is logged and yields empty buckets.
func (s *Service) GetAISuggestions(ctx context.Context, resumeText, targetRole string) types.Suggestions {
	if !s.Enabled() {
		log.Warn().Msg("AI suggestions requested without an API key")
		return types.EmptySuggestions()
	}

	user, err := prompts.Render(prompts.SuggestionsFile, "review", map[string]string{
		"TargetRole": targetRole,
		"ResumeText": resumeText,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to build suggestion prompt")
		return types.EmptySuggestions()
	}

	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		System: prompts.MustGet(prompts.SuggestionsFile, "reviewer-system"),
		User:   user,
	})
	if err != nil {
		log.Error().Err(err).Str("model", s.client.Model()).Msg("error getting AI suggestions")
		return types.EmptySuggestions()
	}
	if resp.Content == "" {
		log.Error().Str("model", s.client.Model()).Msg("AI suggestions response has no completion content")
		return types.EmptySuggestions()
	}

	return ParseAISuggestions(resp.Content)
}

// Close releases the provider client
func (s *Service) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}
