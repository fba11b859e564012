package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Template selects the preview style
type Template string

const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	TemplateMinimal Template = "minimal"
)

const (
	placeholderName    = "Full Name"
	placeholderContact = "Location | Phone | Email | LinkedIn"
)

// Templates lists the available preview styles
func Templates() []Template {
	return []Template{TemplateModern, TemplateClassic, TemplateMinimal}
}

// ParseTemplate resolves a template name; empty means modern
func ParseTemplate(name string) (Template, error) {
	if name == "" {
		return TemplateModern, nil
	}
	for _, t := range Templates() {
		if string(t) == strings.ToLower(name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTemplate, name)
}

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error
)

func templates() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New("").Funcs(template.FuncMap{
			"date":      FormatDate,
			"dateRange": DateRange,
			"join":      strings.Join,
		}).ParseFS(templateFS, "templates/*.html.tmpl")
	})
	return parsed, parseErr
}

// resumeView is the data behind resume.html.tmpl
type resumeView struct {
	Template Template
	Name     string
	Contact  string
	Resume   types.ResumeData
}

// RenderHTML renders a complete HTML page for the resume in the given style
func RenderHTML(r types.ResumeData, style Template) (string, error) {
	if _, err := ParseTemplate(string(style)); err != nil {
		return "", err
	}
	if style == "" {
		style = TemplateModern
	}
	return execute("resume.html.tmpl", resumeView{
		Template: style,
		Name:     FullName(r.PersonalInfo),
		Contact:  ContactLine(r.PersonalInfo),
		Resume:   r,
	})
}

// RenderGeneratedHTML renders generator output as a complete HTML page
func RenderGeneratedHTML(g *types.GeneratedResume) (string, error) {
	if g == nil {
		return "", &TemplateError{Template: "generated.html.tmpl", Message: "no resume to render"}
	}
	return execute("generated.html.tmpl", g)
}

func execute(name string, data any) (string, error) {
	tmpl, err := templates()
	if err != nil {
		return "", &TemplateError{Template: name, Message: "failed to parse templates", Cause: err}
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", &TemplateError{Template: name, Message: "failed to execute template", Cause: err}
	}
	return buf.String(), nil
}

// FullName joins first and last name, or returns the placeholder
func FullName(p types.PersonalInfo) string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return placeholderName
	}
	return name
}

// ContactLine joins location, phone, email and LinkedIn with " | ", or returns the placeholder
func ContactLine(p types.PersonalInfo) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Location, p.Phone, p.Email, p.LinkedIn} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return placeholderContact
	}
	return strings.Join(parts, " | ")
}

var dateLayouts = []string{"2006-01", "2006-01-02", time.RFC3339, "2006"}

// FormatDate renders a stored date as "Jan 2006". Unparseable input comes back unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return s
}

// DateRange renders "start - end", with Present for an open end
func DateRange(start, end string) string {
	if end == "" {
		return FormatDate(start) + " - Present"
	}
	return FormatDate(start) + " - " + FormatDate(end)
}
