package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// SuggestionsRequest is the body of POST /api/suggestions
type SuggestionsRequest struct {
	ResumeText string `json:"resumeText"`
	TargetRole string `json:"targetRole"`
}

// ApplyRequest is the body of POST /api/suggestions/apply.
// When Enhancements is set, every accepted enhancement is applied and Section/Index are ignored.
type ApplyRequest struct {
	Resume       types.ResumeData      `json:"resume"`
	Suggestions  types.Suggestions     `json:"suggestions"`
	Section      string                `json:"section"`
	Index        int                   `json:"index"`
	Enhancements []types.AIEnhancement `json:"enhancements,omitempty"`
}

// handleSuggestions asks the reviewer model for suggestions. Provider failures yield empty
// buckets, so a decodable request always gets 200.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req SuggestionsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeFailure(w, r, HTTPStatus(err), err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.suggestions.GetAISuggestions(r.Context(), req.ResumeText, req.TargetRole))
}

// handleApplySuggestion applies one suggestion, or a list of accepted enhancements, to a resume
func (s *Server) handleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeFailure(w, r, HTTPStatus(err), err)
		return
	}

	if req.Enhancements != nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"resume": resume.ApplyEnhancements(req.Resume, req.Enhancements),
		})
		return
	}

	updated, err := resume.ApplySuggestion(req.Resume, req.Suggestions, req.Section, req.Index)
	if err != nil {
		s.writeFailure(w, r, http.StatusBadRequest, errors.WithStack(err))
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resume": updated})
}

// readResume decodes and schema-checks a ResumeData body and resolves the ?template= style
func (s *Server) readResume(w http.ResponseWriter, r *http.Request) (types.ResumeData, rendering.Template, error) {
	var data types.ResumeData

	style := s.template
	if name := r.URL.Query().Get("template"); name != "" {
		t, err := rendering.ParseTemplate(name)
		if err != nil {
			return data, "", errors.WithStack(&ErrBadRequest{Message: "invalid template", Cause: err})
		}
		style = t
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		return data, "", errors.WithStack(&ErrBadRequest{Message: "failed to read request body", Cause: err})
	}
	if err := schemas.ValidateResumeData(body); err != nil {
		return data, "", errors.WithStack(&ErrBadRequest{Message: "invalid resume", Cause: err})
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return data, "", errors.WithStack(&ErrBadRequest{Message: "invalid resume", Cause: err})
	}
	return data, style, nil
}

// handlePreview renders the resume as an HTML page
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, style, err := s.readResume(w, r)
	if err != nil {
		s.writeFailure(w, r, HTTPStatus(err), err)
		return
	}

	html, err := rendering.RenderHTML(data, style)
	if err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, errors.WithStack(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html) //nolint:errcheck
}

// handleExport renders the resume and prints it to PDF
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, style, err := s.readResume(w, r)
	if err != nil {
		s.writeFailure(w, r, HTTPStatus(err), err)
		return
	}

	html, err := rendering.RenderHTML(data, style)
	if err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, errors.WithStack(err))
		return
	}

	pdf, err := s.printer.PrintPDF(r.Context(), html)
	if err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, err)
		return
	}

	log.Debug().Str("template", string(style)).Int("bytes", len(pdf)).Msg("resume exported")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf) //nolint:errcheck
}
