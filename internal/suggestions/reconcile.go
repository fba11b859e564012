// Package suggestions asks an LLM reviewer for resume improvements and buckets its free-text
// answer into summary, experience and skills suggestions.
package suggestions

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	experiencePrefix = regexp.MustCompile(`(?i)^.*?experience:`)
	bulletMarker     = regexp.MustCompile(`^[-•*]\s*`)
)

// ParseAISuggestions buckets a completion by paragraph (blank-line separated).
//
// The summary is the first paragraph mentioning "summary", kept verbatim. Every paragraph
// mentioning "experience" becomes an experience suggestion with its "...experience:" lead-in
// removed. The first paragraph mentioning "skills" is split into lines; its heading line and
// blank lines are dropped and bullet markers stripped.
func ParseAISuggestions(text string) types.Suggestions {
	out := types.EmptySuggestions()
	paragraphs := strings.Split(text, "\n\n")

	for _, p := range paragraphs {
		if strings.Contains(strings.ToLower(p), "summary") {
			out.Summary = p
			break
		}
	}

	for _, p := range paragraphs {
		if strings.Contains(strings.ToLower(p), "experience") {
			out.Experience = append(out.Experience, strings.TrimSpace(experiencePrefix.ReplaceAllString(p, "")))
		}
	}

	for _, p := range paragraphs {
		if !strings.Contains(strings.ToLower(p), "skills") {
			continue
		}
		for _, line := range strings.Split(p, "\n") {
			if strings.TrimSpace(line) == "" || strings.Contains(strings.ToLower(line), "skills") {
				continue
			}
			out.Skills = append(out.Skills, strings.TrimSpace(bulletMarker.ReplaceAllString(line, "")))
		}
		break
	}

	return out
}
