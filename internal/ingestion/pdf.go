package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

var pdfMagic = []byte("%PDF")

// IsPDF reports whether data starts with the PDF file signature
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// ExtractPDFText returns the plain text of every page, pages separated by a blank line.
// Pages without content are skipped; a page that fails to decode is logged and skipped.
func ExtractPDFText(data []byte) (string, error) {
	text, _, err := extractPDF(data)
	return text, err
}

func extractPDF(data []byte) (text string, pages int, err error) {
	if len(data) == 0 {
		return "", 0, ErrEmptyDocument
	}
	if !IsPDF(data) {
		return "", 0, fmt.Errorf("%w: missing %%PDF header", ErrInvalidPDF)
	}

	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrInvalidPDF, err)
	}

	pages = reader.NumPage()
	parts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, perr := page.GetPlainText(nil)
		if perr != nil {
			log.Warn().Err(perr).Int("page", i).Msg("failed to extract pdf page text")
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			parts = append(parts, pageText)
		}
	}

	return strings.Join(parts, "\n\n"), pages, nil
}
