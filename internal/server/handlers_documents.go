package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/suggestions"
	"github.com/jonathan/resume-builder/internal/types"
)

// ExtractRequest is the body of POST /api/extract
type ExtractRequest struct {
	Text string `json:"text"`
}

// UploadResponse is the result of the upload flow
type UploadResponse struct {
	Text         string                `json:"text"`
	Metadata     *ingestion.Metadata   `json:"metadata"`
	Resume       types.ResumeData      `json:"resume"`
	Suggestions  types.Suggestions     `json:"suggestions"`
	Enhancements []types.AIEnhancement `json:"enhancements"`
}

// handleParsePDF returns the text of an uploaded PDF.
// Anything other than a multipart "file" part typed application/pdf is rejected.
func (s *Server) handleParsePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		log.Debug().Err(err).Msg("parse-pdf request without a file")
		s.errorResponse(w, http.StatusBadRequest, MessageInvalidFile)
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != ingestion.ContentTypePDF {
		s.errorResponse(w, http.StatusBadRequest, MessageInvalidFile)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("failed to read uploaded PDF")
		s.errorResponse(w, http.StatusInternalServerError, MessageParsePDFFailed)
		return
	}

	text, err := ingestion.ExtractPDFText(data)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("PDF parse error")
		s.errorResponse(w, http.StatusInternalServerError, MessageParsePDFFailed)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"text": text})
}

// handleExtract runs the heuristic section segmenter over plain resume text
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeFailure(w, r, HTTPStatus(err), err)
		return
	}
	s.jsonResponse(w, http.StatusOK, parsing.ExtractResumeData(req.Text))
}

// handleUpload ingests a resume document, merges the extracted data into the resume sent in
// the optional "resume" field and, when a target role is given, asks for suggestions.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeFailure(w, r, http.StatusBadRequest, errors.WithStack(&ErrBadRequest{Message: "missing file", Cause: err}))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeFailure(w, r, http.StatusInternalServerError, errors.Wrap(err, "failed to read upload"))
		return
	}

	doc, err := ingestion.ExtractText(header.Header.Get("Content-Type"), header.Filename, data)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ingestion.ErrUnsupportedFormat) || errors.Is(err, ingestion.ErrEmptyDocument) {
			status = http.StatusBadRequest
		}
		s.writeFailure(w, r, status, errors.WithStack(err))
		return
	}

	current := resume.New()
	if raw := r.FormValue("resume"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &current); err != nil {
			s.writeFailure(w, r, http.StatusBadRequest, errors.WithStack(&ErrBadRequest{Message: "invalid resume field", Cause: err}))
			return
		}
	}

	merged := resume.MergeExtracted(current, parsing.ExtractResumeData(doc.Text))
	targetRole := r.FormValue("targetRole")
	if targetRole != "" {
		merged = resume.SetTargetRole(merged, targetRole)
	}

	sugg := types.EmptySuggestions()
	if targetRole != "" && s.suggestions.Enabled() {
		sugg = s.suggestions.GetAISuggestions(r.Context(), doc.Text, targetRole)
	}

	log.Info().
		Str("file", header.Filename).
		Str("format", string(doc.Metadata.Format)).
		Int("chars", doc.Metadata.Chars).
		Msg("resume uploaded")

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		Text:         doc.Text,
		Metadata:     doc.Metadata,
		Resume:       merged,
		Suggestions:  sugg,
		Enhancements: suggestions.ToEnhancements(merged, sugg),
	})
}
