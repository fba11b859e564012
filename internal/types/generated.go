//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// GeneratedResume is the structured resume returned by the generation prompt
type GeneratedResume struct {
	ProfessionalSummary    string                `json:"professionalSummary"`
	KeySkills              []string              `json:"keySkills"`
	ProfessionalExperience []GeneratedExperience `json:"professionalExperience,omitempty"`
	Projects               []GeneratedProject    `json:"projects,omitempty"`
	Certifications         []string              `json:"certifications,omitempty"`
	AdditionalSkills       []string              `json:"additionalSkills,omitempty"`
}

// GeneratedExperience is an experience entry with quantified achievements
type GeneratedExperience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements"`
}

// GeneratedProject is a project tailored to the job analysis
type GeneratedProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// GenerateResumeRequest is the body of the resume generation endpoint
type GenerateResumeRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	LinkedIn       string `json:"linkedin"`
	Education      string `json:"education"`
	JobDescription string `json:"jobDescription"`
	JobURL         string `json:"jobUrl,omitempty"`
}

// Placeholder candidate used when the form leaves identity fields blank
const (
	DefaultCandidateName      = "John Doe"
	DefaultCandidateEmail     = "john.doe@example.com"
	DefaultCandidateLinkedIn  = "https://www.linkedin.com/in/johndoe"
	DefaultCandidateEducation = "Bachelor of Science in Computer Science from Anytown University"
)

// GenerateResumeForm is the user-facing job-specific builder form.
// Optional fields are only checked when filled in.
type GenerateResumeForm struct {
	Name           string `json:"name" validate:"omitempty,min=2"`
	Email          string `json:"email" validate:"omitempty,email"`
	LinkedIn       string `json:"linkedin" validate:"omitempty,url"`
	Education      string `json:"education" validate:"omitempty,min=10"`
	JobDescription string `json:"jobDescription" validate:"required_without=JobURL,omitempty,min=50"`
	JobURL         string `json:"jobUrl" validate:"omitempty,url"`
}

// Validate validates the GenerateResumeForm using the validator.
func (f *GenerateResumeForm) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// ToRequest converts the form into a request, filling blank identity fields with placeholders
func (f *GenerateResumeForm) ToRequest() GenerateResumeRequest {
	req := GenerateResumeRequest{
		Name:           f.Name,
		Email:          f.Email,
		LinkedIn:       f.LinkedIn,
		Education:      f.Education,
		JobDescription: f.JobDescription,
		JobURL:         f.JobURL,
	}
	if req.Name == "" {
		req.Name = DefaultCandidateName
	}
	if req.Email == "" {
		req.Email = DefaultCandidateEmail
	}
	if req.LinkedIn == "" {
		req.LinkedIn = DefaultCandidateLinkedIn
	}
	if req.Education == "" {
		req.Education = DefaultCandidateEducation
	}
	return req
}

// FieldMessages flattens validator errors into field → message pairs keyed by JSON name.
// Non-validator errors are returned under the "_" key.
func FieldMessages(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[jsonFieldName(fe.Field())] = fieldMessage(fe)
	}
	return out
}

var formFieldNames = map[string]string{
	"Name":           "name",
	"Email":          "email",
	"LinkedIn":       "linkedin",
	"Education":      "education",
	"JobDescription": "jobDescription",
	"JobURL":         "jobUrl",
}

func jsonFieldName(field string) string {
	if name, ok := formFieldNames[field]; ok {
		return name
	}
	return field
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "Name must be at least 2 characters"
	case "Email":
		return "Invalid email address"
	case "LinkedIn":
		return "Invalid LinkedIn URL"
	case "Education":
		return "Please provide your education details"
	case "JobDescription":
		return "Please provide a detailed job description"
	case "JobURL":
		return "Invalid job URL"
	}
	return fe.Error()
}
