package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/llm"
)

// Messages returned by the PDF parsing endpoint
const (
	MessageInvalidFile    = "Invalid file"
	MessageParsePDFFailed = "Failed to parse PDF"
)

// ErrChatDisabled is returned by /api/chat when no completion provider key is configured
var ErrChatDisabled = errors.New("chat provider API key is not configured")

// ErrBadRequest marks request bodies the server could not decode
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// Failure is the body of a failed LLM-backed request
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewFailure builds the failure body; details carries the error chain with stack traces
// where the error was wrapped with one
func NewFailure(err error) Failure {
	return Failure{
		Success: false,
		Error:   failureMessage(err),
		Details: fmt.Sprintf("%+v", err),
	}
}

// failureMessage is the user-facing message for err.
// Generation stage errors already name the stage and carry the provider body.
func failureMessage(err error) string {
	var stage *generation.StageError
	if errors.As(err, &stage) {
		return stage.Error()
	}
	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		return fmt.Sprintf("failed to get response: %s", upstream.Body)
	}
	return err.Error()
}

// HTTPStatus returns the status code for an error: 400 for undecodable requests, 500 otherwise.
// The chat and generation routes always answer 500.
func HTTPStatus(err error) int {
	var badRequest *ErrBadRequest
	if errors.As(err, &badRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeFailure logs err and writes {success:false,error,details} with the given status
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, status int, err error) {
	log.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	s.jsonResponse(w, status, NewFailure(err))
}
