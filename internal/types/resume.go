// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ExperienceLevel is the candidate seniority used to tune generated text
type ExperienceLevel string

// Experience levels
const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// Valid reports whether the level is one of the known values
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior:
		return true
	default:
		return false
	}
}

// ParseExperienceLevel converts a string into an ExperienceLevel
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	level := ExperienceLevel(s)
	if !level.Valid() {
		return "", fmt.Errorf("invalid experience level %q (want entry, mid or senior)", s)
	}
	return level, nil
}

// PersonalInfo holds the candidate's name and contact details
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin"`
	Website   string `json:"website"`
	Location  string `json:"location"`
}

// ResumeData is the full in-memory resume being edited
type ResumeData struct {
	PersonalInfo    PersonalInfo        `json:"personalInfo"`
	Summary         string              `json:"summary"`
	Experience      []ExperienceItem    `json:"experience" validate:"dive"`
	Education       []EducationItem     `json:"education" validate:"dive"`
	Skills          []string            `json:"skills"`
	Projects        []ProjectItem       `json:"projects" validate:"dive"`
	Certifications  []CertificationItem `json:"certifications" validate:"dive"`
	TargetRole      string              `json:"targetRole"`
	ExperienceLevel ExperienceLevel     `json:"experienceLevel" validate:"omitempty,oneof=entry mid senior"`
}

// ExperienceItem is a single job held by the candidate
type ExperienceItem struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Current     bool     `json:"current"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets"`
}

// EducationItem is a degree or course of study
type EducationItem struct {
	ID           string `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Location     string `json:"location"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Current      bool   `json:"current"`
	GPA          string `json:"gpa,omitempty"`
	Description  string `json:"description,omitempty"`
}

// ProjectItem is a personal or professional project
type ProjectItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// CertificationItem is a professional certification
type CertificationItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Issuer  string `json:"issuer"`
	Date    string `json:"date"`
	Expires string `json:"expires,omitempty"`
	Link    string `json:"link,omitempty"`
}

// ExtractedResume is the partial resume recovered from plain resume text.
// Summary, target role and experience level are never populated by extraction.
type ExtractedResume struct {
	PersonalInfo   PersonalInfo        `json:"personalInfo"`
	Experience     []ExperienceItem    `json:"experience"`
	Education      []EducationItem     `json:"education"`
	Skills         []string            `json:"skills"`
	Projects       []ProjectItem       `json:"projects"`
	Certifications []CertificationItem `json:"certifications"`
}

// Validate checks field formats on resume data received from callers.
func (r *ResumeData) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ItemID returns the item's identifier
func (e ExperienceItem) ItemID() string { return e.ID }

// WithID returns a copy of the item using id
func (e ExperienceItem) WithID(id string) ExperienceItem {
	e.ID = id
	return e
}

// ItemID returns the item's identifier
func (e EducationItem) ItemID() string { return e.ID }

// WithID returns a copy of the item using id
func (e EducationItem) WithID(id string) EducationItem {
	e.ID = id
	return e
}

// ItemID returns the item's identifier
func (p ProjectItem) ItemID() string { return p.ID }

// WithID returns a copy of the item using id
func (p ProjectItem) WithID(id string) ProjectItem {
	p.ID = id
	return p
}

// ItemID returns the item's identifier
func (c CertificationItem) ItemID() string { return c.ID }

// WithID returns a copy of the item using id
func (c CertificationItem) WithID(id string) CertificationItem {
	c.ID = id
	return c
}
