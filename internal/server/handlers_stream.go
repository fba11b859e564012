package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/types"
)

// handleGenerateResumeStream runs the generation chain and reports each stage as an SSE
// "step" event, ending with "complete" or "error"
func (s *Server) handleGenerateResumeStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateResumeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, err)
		return
	}

	log.Debug().Msg("starting streaming resume generation")

	result, err := s.generator.GenerateWithProgress(r.Context(), req, func(event generation.ProgressEvent) {
		if err := sse.WriteEvent(EventStep, event); err != nil {
			log.Warn().Err(err).Msg("error writing SSE event")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("streaming resume generation failed")
		sse.WriteError(NewFailure(err))
		return
	}

	sse.WriteComplete(GenerateResumeResponse{
		Success:     true,
		Resume:      result.Raw,
		JobAnalysis: result.JobAnalysis,
	})
	log.Debug().Msg("streaming resume generation completed")
}
