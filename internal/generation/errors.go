package generation

import (
	"fmt"
)

// Stage names the step of the prompt chain an error came from
type Stage string

// Prompt chain stages
const (
	StageFetch    Stage = "fetch"
	StageAnalysis Stage = "analysis"
	StageResume   Stage = "resume"
)

// ConfigError is returned when the generator cannot run at all, e.g. no provider key
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// StageError wraps a provider failure with the chain stage that produced it.
// The message mirrors what callers show to users, provider body included.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	switch e.Stage {
	case StageFetch:
		return fmt.Sprintf("failed to fetch job description: %v", e.Cause)
	case StageAnalysis:
		return fmt.Sprintf("failed to analyze job description: %v", e.Cause)
	default:
		return fmt.Sprintf("failed to generate resume: %v", e.Cause)
	}
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// ResponseShapeError is returned when a completion body has no choices[0].message.content
type ResponseShapeError struct {
	Stage Stage
}

func (e *ResponseShapeError) Error() string {
	return "invalid response format from completion provider"
}

// ParseError is returned when the resume completion is not JSON, even after brace extraction
type ParseError struct {
	Message string
	Content string
	Cause   error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// StructureError is returned when the parsed resume lacks a summary or a skills array
type StructureError struct {
	Cause error
}

func (e *StructureError) Error() string {
	return "invalid resume content structure"
}

func (e *StructureError) Unwrap() error {
	return e.Cause
}
