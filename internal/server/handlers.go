package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResumeResponse is the body of a successful generation
type GenerateResumeResponse struct {
	Success bool `json:"success"`
	// Resume is the object exactly as the model produced it, key order included
	Resume      json.RawMessage `json:"resume"`
	JobAnalysis string          `json:"jobAnalysis"`
}

// decodeJSON reads a JSON request body no larger than the upload limit
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.WithStack(&ErrBadRequest{Message: "invalid request body", Cause: err})
	}
	return nil
}

// handleChat forwards a single prompt to the chat provider and relays its JSON body untouched
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.chat == nil {
		s.writeFailure(w, r, http.StatusInternalServerError, errors.WithStack(ErrChatDisabled))
		return
	}

	var req ChatRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, err)
		return
	}

	system, err := prompts.Get(prompts.ChatFile, "assistant-system")
	if err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, errors.Wrap(err, "chat prompt unavailable"))
		return
	}

	resp, err := s.chat.Chat(r.Context(), llm.ChatRequest{System: system, User: req.Prompt})
	if err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(resp.Raw) //nolint:errcheck
}

// handleGenerateResume runs the job analysis and resume prompts and returns both results
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateResumeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, err)
		return
	}

	result, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResumeResponse{
		Success:     true,
		Resume:      result.Raw,
		JobAnalysis: result.JobAnalysis,
	})
}
