// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, ending in "..." when cut
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// writeList writes up to limit bullet items under a heading
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintDocument outputs what was read from an ingested file
func (p *Printer) PrintDocument(doc *ingestion.Document) {
	if doc == nil || doc.Metadata == nil {
		return
	}
	m := doc.Metadata

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:    %s\n", m.Filename)
	fmt.Fprintf(&sb, "Format:  %s\n", m.Format)
	if m.Pages > 0 {
		fmt.Fprintf(&sb, "Pages:   %d\n", m.Pages)
	}
	fmt.Fprintf(&sb, "Size:    %d bytes\n", m.Bytes)
	fmt.Fprintf(&sb, "Text:    %d chars", m.Chars)

	p.printBox("INGESTED DOCUMENT", sb.String())
}

// PrintExtractedResume outputs a summary of the sections recovered from resume text.
func (p *Printer) PrintExtractedResume(r *types.ExtractedResume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	info := r.PersonalInfo
	if info.Email != "" {
		fmt.Fprintf(&sb, "Email:    %s\n", info.Email)
	}
	if info.Phone != "" {
		fmt.Fprintf(&sb, "Phone:    %s\n", info.Phone)
	}
	if info.LinkedIn != "" {
		fmt.Fprintf(&sb, "LinkedIn: %s\n", info.LinkedIn)
	}
	sb.WriteString("\n")

	experience := make([]string, 0, len(r.Experience))
	for _, e := range r.Experience {
		experience = append(experience, e.Position)
	}
	writeList(&sb, "Experience", experience, maxItemsToShow)

	education := make([]string, 0, len(r.Education))
	for _, e := range r.Education {
		education = append(education, e.Institution)
	}
	writeList(&sb, "Education", education, maxItemsToShow)

	writeList(&sb, fmt.Sprintf("Skills (%d)", len(r.Skills)), r.Skills, maxItemsToShow)

	fmt.Fprintf(&sb, "Projects: %d  Certifications: %d", len(r.Projects), len(r.Certifications))

	p.printBox("EXTRACTED RESUME", sb.String())
}

// PrintSuggestions outputs the suggestion buckets
func (p *Printer) PrintSuggestions(s types.Suggestions) {
	if s.IsEmpty() {
		p.printBox("AI SUGGESTIONS", "No suggestions")
		return
	}

	var sb strings.Builder
	if s.Summary != "" {
		sb.WriteString("Summary:\n")
		for _, line := range strings.Split(s.Summary, "\n") {
			fmt.Fprintf(&sb, "  %s\n", line)
		}
		sb.WriteString("\n")
	}
	writeList(&sb, "Experience", s.Experience, maxItemsToShow)
	writeList(&sb, "Skills", s.Skills, maxItemsToShow)

	p.printBox("AI SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintJobAnalysis outputs the first lines of the job analysis completion
func (p *Printer) PrintJobAnalysis(analysis string) {
	analysis = strings.TrimSpace(analysis)
	if analysis == "" {
		return
	}

	lines := strings.Split(analysis, "\n")
	const maxLines = 12
	if len(lines) > maxLines {
		more := len(lines) - maxLines
		lines = append(lines[:maxLines], fmt.Sprintf("... %d more lines", more))
	}
	p.printBox("JOB ANALYSIS", strings.Join(lines, "\n"))
}

// PrintGeneratedResume outputs the generated summary, skills and experience headlines
func (p *Printer) PrintGeneratedResume(g *types.GeneratedResume) {
	if g == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Summary:  %s\n\n", g.ProfessionalSummary)
	writeList(&sb, "Key Skills", g.KeySkills, maxItemsToShow)

	experience := make([]string, 0, len(g.ProfessionalExperience))
	for _, e := range g.ProfessionalExperience {
		experience = append(experience, fmt.Sprintf("%s, %s (%d achievements)", e.Title, e.Company, len(e.Achievements)))
	}
	writeList(&sb, "Experience", experience, maxItemsToShow)

	projects := make([]string, 0, len(g.Projects))
	for _, pr := range g.Projects {
		projects = append(projects, pr.Name)
	}
	writeList(&sb, "Projects", projects, 3)

	p.printBox("GENERATED RESUME", strings.TrimSuffix(sb.String(), "\n\n"))
}
