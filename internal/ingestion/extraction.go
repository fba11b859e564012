// Package ingestion turns uploaded resume documents into clean plain text.
package ingestion

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format identifies a supported document type
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrEmptyDocument is returned for zero-length uploads
	ErrEmptyDocument = errors.New("empty document")
	// ErrInvalidPDF is returned when the data is not a readable PDF
	ErrInvalidPDF = errors.New("invalid PDF")
	// ErrInvalidDOCX is returned when the data is not a readable Word document
	ErrInvalidDOCX = errors.New("invalid DOCX")
	// ErrUnsupportedFormat is returned when neither content type, extension nor content identify the format
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Document is the result of ingesting one file
type Document struct {
	Text     string    `json:"text"`
	Metadata *Metadata `json:"metadata"`
}

// DetectFormat picks the document format from the content type, then the file extension,
// then the content itself.
func DetectFormat(contentType, filename string, data []byte) (Format, error) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case mediaType == ContentTypePDF:
			return FormatPDF, nil
		case mediaType == ContentTypeDOCX:
			return FormatDOCX, nil
		case strings.HasPrefix(mediaType, "text/"):
			return FormatText, nil
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".md", ".text":
		return FormatText, nil
	}

	switch {
	case IsPDF(data):
		return FormatPDF, nil
	case len(data) > 0 && utf8.Valid(data):
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: content type %q, file %q", ErrUnsupportedFormat, contentType, filename)
}

// ExtractText detects the document format and returns its cleaned text with metadata
func ExtractText(contentType, filename string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	format, err := DetectFormat(contentType, filename, data)
	if err != nil {
		return nil, err
	}

	meta := NewMetadata(filename, format, data)
	var raw string
	switch format {
	case FormatPDF:
		raw, meta.Pages, err = extractPDF(data)
	case FormatDOCX:
		raw, err = ExtractDOCXText(data)
	default:
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: text file is not valid UTF-8", ErrUnsupportedFormat)
		}
		raw = string(data)
	}
	if err != nil {
		return nil, err
	}

	text := CleanText(raw)
	meta.Chars = len(text)
	return &Document{Text: text, Metadata: meta}, nil
}

// ReadFile ingests a document from disk
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractText("", filepath.Base(path), data)
}
