package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphEndRegex = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	tabRegex          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTagRegex       = regexp.MustCompile(`<[^>]+>`)
)

// ExtractDOCXText returns the body text of a Word document, one line per paragraph
func ExtractDOCXText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDOCX, err)
	}
	defer doc.Close()

	return documentXMLText(doc.Editable().GetContent()), nil
}

// documentXMLText flattens WordprocessingML into plain text
func documentXMLText(content string) string {
	content = paragraphEndRegex.ReplaceAllString(content, "\n")
	content = tabRegex.ReplaceAllString(content, "\t")
	content = xmlTagRegex.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
