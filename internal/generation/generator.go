// Package generation drafts a job-targeted resume with a two-stage prompt chain:
// the job description is analyzed first, then the analysis and candidate details are turned
// into a resume JSON object.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Progress messages reported while a resume is generated
const (
	MessageFetching  = "Fetching job description..."
	MessageAnalyzing = "Analyzing job description..."
	MessageTailoring = "Fetching tailored information..."
	MessageDrafting  = "Drafting your resume..."
)

// JobFetcher resolves a job posting URL to its description text
type JobFetcher interface {
	JobDescription(ctx context.Context, url string) (string, error)
}

// ProgressEvent reports that a chain stage has started
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// ProgressFunc receives progress events; it is called on the generating goroutine
type ProgressFunc func(ProgressEvent)

// Result is a generated resume plus the intermediate job analysis text
type Result struct {
	// Resume is a best-effort typed view of Raw
	Resume      *types.GeneratedResume `json:"resume"`
	JobAnalysis string                 `json:"jobAnalysis"`
	// Raw is the resume object exactly as parsed from the model output
	Raw json.RawMessage `json:"-"`
}

// Generator runs the prompt chain against one completion client
type Generator struct {
	client  llm.Client
	fetcher JobFetcher
}

// Option configures a Generator
type Option func(*Generator)

// WithFetcher enables job descriptions given only by URL
func WithFetcher(f JobFetcher) Option {
	return func(g *Generator) {
		g.fetcher = f
	}
}

// New creates a generator. A nil client makes every Generate call fail with a ConfigError.
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{client: client}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the chain without progress reporting
func (g *Generator) Generate(ctx context.Context, req types.GenerateResumeRequest) (*Result, error) {
	return g.GenerateWithProgress(ctx, req, nil)
}

// GenerateWithProgress runs the chain, calling progress as each stage starts.
// The two completion calls are sequential and never retried.
func (g *Generator) GenerateWithProgress(ctx context.Context, req types.GenerateResumeRequest, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	if g.client == nil {
		return nil, errors.WithStack(&ConfigError{Message: "completion provider API key is not configured"})
	}

	jobDescription := req.JobDescription
	if strings.TrimSpace(jobDescription) == "" && req.JobURL != "" {
		if g.fetcher == nil {
			return nil, errors.WithStack(&ConfigError{Message: "job URL given but no job fetcher is configured"})
		}
		progress(ProgressEvent{Stage: StageFetch, Message: MessageFetching})
		text, err := g.fetcher.JobDescription(ctx, req.JobURL)
		if err != nil {
			return nil, errors.WithStack(&StageError{Stage: StageFetch, Cause: err})
		}
		jobDescription = text
	}

	progress(ProgressEvent{Stage: StageAnalysis, Message: MessageAnalyzing})
	analysisPrompt, err := prompts.Render(prompts.GenerationFile, "job-analysis", map[string]string{
		"JobDescription": jobDescription,
	})
	if err != nil {
		return nil, errors.WithStack(&ConfigError{Message: "job analysis prompt unavailable", Cause: err})
	}

	log.Debug().Str("model", g.client.Model()).Msg("sending job analysis request")
	jobAnalysis, err := g.complete(ctx, StageAnalysis, "job-analysis-system", analysisPrompt)
	if err != nil {
		return nil, err
	}

	progress(ProgressEvent{Stage: StageResume, Message: MessageTailoring})
	resumePrompt, err := prompts.Render(prompts.GenerationFile, "resume", map[string]string{
		"Name":        req.Name,
		"Email":       req.Email,
		"LinkedIn":    req.LinkedIn,
		"Education":   req.Education,
		"JobAnalysis": jobAnalysis,
	})
	if err != nil {
		return nil, errors.WithStack(&ConfigError{Message: "resume prompt unavailable", Cause: err})
	}

	log.Debug().Str("model", g.client.Model()).Msg("sending resume generation request")
	content, err := g.complete(ctx, StageResume, "resume-system", resumePrompt)
	if err != nil {
		return nil, err
	}

	progress(ProgressEvent{Stage: StageResume, Message: MessageDrafting})
	raw, err := ParseResumeContent(content)
	if err != nil {
		return nil, err
	}
	resume, err := ValidateResumeContent(raw)
	if err != nil {
		return nil, err
	}

	return &Result{Resume: resume, JobAnalysis: jobAnalysis, Raw: raw}, nil
}

// complete sends one stage of the chain and returns the completion text
func (g *Generator) complete(ctx context.Context, stage Stage, systemKey, user string) (string, error) {
	system, err := prompts.Get(prompts.GenerationFile, systemKey)
	if err != nil {
		return "", errors.WithStack(&ConfigError{Message: "system prompt unavailable", Cause: err})
	}

	resp, err := g.client.Chat(ctx, llm.ChatRequest{System: system, User: user})
	if err != nil {
		if llm.IsMissingKey(err) {
			return "", errors.WithStack(&ConfigError{Message: "completion provider API key is not configured", Cause: err})
		}
		return "", errors.WithStack(&StageError{Stage: stage, Cause: err})
	}
	log.Debug().Str("stage", string(stage)).Int("bytes", len(resp.Raw)).Msg("completion response")

	if resp.Content == "" {
		return "", errors.WithStack(&ResponseShapeError{Stage: stage})
	}
	return resp.Content, nil
}

// ParseResumeContent decodes the model's resume output.
// The content is parsed as JSON directly; failing that, the span from the first '{' to the
// last '}' is parsed instead. Only one recovery attempt is made.
func ParseResumeContent(content string) (json.RawMessage, error) {
	if raw, err := decodeJSON(content); err == nil {
		return raw, nil
	}
	log.Warn().Str("content", content).Msg("resume content is not plain JSON, extracting object")

	candidate, found := llm.ExtractJSONObject(content)
	if !found {
		return nil, errors.WithStack(&ParseError{Message: "no valid JSON found in the response", Content: content})
	}

	raw, err := decodeJSON(candidate)
	if err != nil {
		return nil, errors.WithStack(&ParseError{
			Message: "failed to parse generated resume content",
			Content: content,
			Cause:   err,
		})
	}
	return raw, nil
}

// decodeJSON checks that s is a single JSON value and returns it compacted, key order kept
func decodeJSON(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ValidateResumeContent checks the parsed object for a truthy professionalSummary and a
// keySkills array, then decodes it. Only those two keys can fail the check; the decode is
// best-effort and fields whose shape differs from GeneratedResume are left zero.
func ValidateResumeContent(raw json.RawMessage) (*types.GeneratedResume, error) {
	if err := schemas.ValidateGeneratedResume(raw); err != nil {
		return nil, errors.WithStack(&StructureError{Cause: err})
	}

	var resume types.GeneratedResume
	if err := json.Unmarshal(raw, &resume); err != nil {
		log.Warn().Err(err).Msg("generated resume does not match the typed shape, keeping raw output")
	}
	return &resume, nil
}
