// Package resume holds the resume being edited as a value and the actions that update it.
//
// Every action takes the previous ResumeData and returns a new one; the input is never
// modified, so callers can keep earlier versions around (undo, diffing, concurrent readers)
// without copying.
package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// ErrIndexOutOfRange is returned when an action addresses a list position that does not exist
var ErrIndexOutOfRange = errors.New("index out of range")

// NewID returns a fresh list item identifier
func NewID() string {
	return uuid.NewString()
}

// New returns an empty resume
func New() types.ResumeData {
	return types.ResumeData{
		Experience:      []types.ExperienceItem{},
		Education:       []types.EducationItem{},
		Skills:          []string{},
		Projects:        []types.ProjectItem{},
		Certifications:  []types.CertificationItem{},
		ExperienceLevel: types.LevelMid,
	}
}

// Clone returns a deep copy of r
func Clone(r types.ResumeData) types.ResumeData {
	out := r
	out.Experience = make([]types.ExperienceItem, len(r.Experience))
	for i, e := range r.Experience {
		e.Bullets = cloneStrings(e.Bullets)
		out.Experience[i] = e
	}
	out.Education = append([]types.EducationItem{}, r.Education...)
	out.Skills = cloneStrings(r.Skills)
	out.Projects = make([]types.ProjectItem, len(r.Projects))
	for i, p := range r.Projects {
		p.Technologies = cloneStrings(p.Technologies)
		out.Projects[i] = p
	}
	out.Certifications = append([]types.CertificationItem{}, r.Certifications...)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}

// SetPersonalInfo replaces the contact block
func SetPersonalInfo(r types.ResumeData, info types.PersonalInfo) types.ResumeData {
	out := Clone(r)
	out.PersonalInfo = info
	return out
}

// SetSummary replaces the professional summary
func SetSummary(r types.ResumeData, summary string) types.ResumeData {
	out := Clone(r)
	out.Summary = summary
	return out
}

// SetTargetRole replaces the role the resume is tailored to
func SetTargetRole(r types.ResumeData, role string) types.ResumeData {
	out := Clone(r)
	out.TargetRole = role
	return out
}

// SetExperienceLevel replaces the seniority level
func SetExperienceLevel(r types.ResumeData, level types.ExperienceLevel) (types.ResumeData, error) {
	if !level.Valid() {
		return r, fmt.Errorf("invalid experience level %q", level)
	}
	out := Clone(r)
	out.ExperienceLevel = level
	return out, nil
}

// AddSkill appends a trimmed skill unless it is blank or already listed
func AddSkill(r types.ResumeData, skill string) types.ResumeData {
	skill = strings.TrimSpace(skill)
	out := Clone(r)
	if skill == "" || contains(out.Skills, skill) {
		return out
	}
	out.Skills = append(out.Skills, skill)
	return out
}

// RemoveSkill drops every occurrence of skill
func RemoveSkill(r types.ResumeData, skill string) types.ResumeData {
	out := Clone(r)
	out.Skills = without(out.Skills, skill)
	return out
}

// FromExtracted starts a new resume from text extraction output.
// Target role is cleared and the level starts at entry, as an uploaded resume has not been
// tailored yet.
func FromExtracted(ex *types.ExtractedResume) types.ResumeData {
	out := New()
	if ex == nil {
		out.ExperienceLevel = types.LevelEntry
		return out
	}
	out.PersonalInfo = ex.PersonalInfo
	out.Experience = append(out.Experience, ex.Experience...)
	out.Education = append(out.Education, ex.Education...)
	out.Skills = append(out.Skills, ex.Skills...)
	out.Projects = append(out.Projects, ex.Projects...)
	out.Certifications = append(out.Certifications, ex.Certifications...)
	out.ExperienceLevel = types.LevelEntry
	return EnsureIDs(out)
}

// MergeExtracted folds extraction output into an existing resume: blank contact fields are
// filled, new skills appended, and extracted list items added after the existing ones.
func MergeExtracted(r types.ResumeData, ex *types.ExtractedResume) types.ResumeData {
	out := Clone(r)
	if ex == nil {
		return out
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&out.PersonalInfo.FirstName, ex.PersonalInfo.FirstName)
	fill(&out.PersonalInfo.LastName, ex.PersonalInfo.LastName)
	fill(&out.PersonalInfo.Email, ex.PersonalInfo.Email)
	fill(&out.PersonalInfo.Phone, ex.PersonalInfo.Phone)
	fill(&out.PersonalInfo.LinkedIn, ex.PersonalInfo.LinkedIn)
	fill(&out.PersonalInfo.Website, ex.PersonalInfo.Website)
	fill(&out.PersonalInfo.Location, ex.PersonalInfo.Location)

	for _, skill := range ex.Skills {
		out = AddSkill(out, skill)
	}
	out.Experience = append(out.Experience, ex.Experience...)
	out.Education = append(out.Education, ex.Education...)
	out.Projects = append(out.Projects, ex.Projects...)
	out.Certifications = append(out.Certifications, ex.Certifications...)
	return EnsureIDs(out)
}

// EnsureIDs assigns fresh identifiers to list items whose id is blank or repeats an earlier
// item's id within the same list
func EnsureIDs(r types.ResumeData) types.ResumeData {
	out := Clone(r)
	out.Experience = ensureIDs(out.Experience)
	out.Education = ensureIDs(out.Education)
	out.Projects = ensureIDs(out.Projects)
	out.Certifications = ensureIDs(out.Certifications)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func without(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
