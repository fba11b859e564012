package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRegex  = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	excessBlankRegex = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted document text while preserving its line structure.
// Line endings become LF, runs of spaces collapse to one, bullet indentation is kept
// and more than one consecutive blank line is reduced to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = excessBlankRegex.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims trailing space and collapses inner whitespace; leading indentation survives
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t ")
	trimmed := strings.TrimLeft(line, " \t ")
	if trimmed == "" {
		return ""
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		// bullet text is left alone so aligned sub-items keep their layout
		return strings.Repeat(" ", indent) + trimmed
	}

	content := multiSpaceRegex.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}
