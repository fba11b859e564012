package resume

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// item is a resume list entry with a stable identifier
type item[T any] interface {
	ItemID() string
	WithID(id string) T
}

// addItem appends it, giving it a new id when it has none or its id is taken
func addItem[T item[T]](list []T, it T) []T {
	if it.ItemID() == "" || indexOf(list, it.ItemID()) >= 0 {
		it = it.WithID(NewID())
	}
	return append(list, it)
}

// updateItem replaces the entry at index, keeping the existing id
func updateItem[T item[T]](list []T, index int, it T) ([]T, error) {
	if index < 0 || index >= len(list) {
		return list, fmt.Errorf("update at %d of %d: %w", index, len(list), ErrIndexOutOfRange)
	}
	list[index] = it.WithID(list[index].ItemID())
	return list, nil
}

func removeItem[T item[T]](list []T, id string) []T {
	out := list[:0]
	for _, it := range list {
		if it.ItemID() != id {
			out = append(out, it)
		}
	}
	return out
}

// moveItem moves the entry at from so that it ends up at position to
func moveItem[T any](list []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return list, fmt.Errorf("move %d to %d of %d: %w", from, to, len(list), ErrIndexOutOfRange)
	}
	it := list[from]
	list = append(list[:from], list[from+1:]...)
	list = append(list[:to], append([]T{it}, list[to:]...)...)
	return list, nil
}

func ensureIDs[T item[T]](list []T) []T {
	seen := make(map[string]bool, len(list))
	for i, it := range list {
		id := it.ItemID()
		if id == "" || seen[id] {
			id = NewID()
			list[i] = it.WithID(id)
		}
		seen[id] = true
	}
	return list
}

func indexOf[T item[T]](list []T, id string) int {
	for i, it := range list {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

// AddExperience appends a job
func AddExperience(r types.ResumeData, e types.ExperienceItem) types.ResumeData {
	out := Clone(r)
	e.Bullets = cloneStrings(e.Bullets)
	out.Experience = addItem(out.Experience, e)
	return out
}

// UpdateExperience replaces the job at index
func UpdateExperience(r types.ResumeData, index int, e types.ExperienceItem) (types.ResumeData, error) {
	out := Clone(r)
	e.Bullets = cloneStrings(e.Bullets)
	list, err := updateItem(out.Experience, index, e)
	if err != nil {
		return r, err
	}
	out.Experience = list
	return out, nil
}

// RemoveExperience drops the job with id
func RemoveExperience(r types.ResumeData, id string) types.ResumeData {
	out := Clone(r)
	out.Experience = removeItem(out.Experience, id)
	return out
}

// MoveExperience reorders jobs
func MoveExperience(r types.ResumeData, from, to int) (types.ResumeData, error) {
	out := Clone(r)
	list, err := moveItem(out.Experience, from, to)
	if err != nil {
		return r, err
	}
	out.Experience = list
	return out, nil
}

// AddEducation appends a degree
func AddEducation(r types.ResumeData, e types.EducationItem) types.ResumeData {
	out := Clone(r)
	out.Education = addItem(out.Education, e)
	return out
}

// UpdateEducation replaces the degree at index
func UpdateEducation(r types.ResumeData, index int, e types.EducationItem) (types.ResumeData, error) {
	out := Clone(r)
	list, err := updateItem(out.Education, index, e)
	if err != nil {
		return r, err
	}
	out.Education = list
	return out, nil
}

// RemoveEducation drops the degree with id
func RemoveEducation(r types.ResumeData, id string) types.ResumeData {
	out := Clone(r)
	out.Education = removeItem(out.Education, id)
	return out
}

// MoveEducation reorders degrees
func MoveEducation(r types.ResumeData, from, to int) (types.ResumeData, error) {
	out := Clone(r)
	list, err := moveItem(out.Education, from, to)
	if err != nil {
		return r, err
	}
	out.Education = list
	return out, nil
}

// AddProject appends a project
func AddProject(r types.ResumeData, p types.ProjectItem) types.ResumeData {
	out := Clone(r)
	p.Technologies = cloneStrings(p.Technologies)
	out.Projects = addItem(out.Projects, p)
	return out
}

// UpdateProject replaces the project at index
func UpdateProject(r types.ResumeData, index int, p types.ProjectItem) (types.ResumeData, error) {
	out := Clone(r)
	p.Technologies = cloneStrings(p.Technologies)
	list, err := updateItem(out.Projects, index, p)
	if err != nil {
		return r, err
	}
	out.Projects = list
	return out, nil
}

// RemoveProject drops the project with id
func RemoveProject(r types.ResumeData, id string) types.ResumeData {
	out := Clone(r)
	out.Projects = removeItem(out.Projects, id)
	return out
}

// MoveProject reorders projects
func MoveProject(r types.ResumeData, from, to int) (types.ResumeData, error) {
	out := Clone(r)
	list, err := moveItem(out.Projects, from, to)
	if err != nil {
		return r, err
	}
	out.Projects = list
	return out, nil
}

// AddTechnology adds a trimmed technology to the project at index unless blank or present
func AddTechnology(r types.ResumeData, index int, tech string) (types.ResumeData, error) {
	if index < 0 || index >= len(r.Projects) {
		return r, fmt.Errorf("project %d of %d: %w", index, len(r.Projects), ErrIndexOutOfRange)
	}
	out := Clone(r)
	tech = strings.TrimSpace(tech)
	if tech == "" || contains(out.Projects[index].Technologies, tech) {
		return out, nil
	}
	out.Projects[index].Technologies = append(out.Projects[index].Technologies, tech)
	return out, nil
}

// RemoveTechnology drops a technology from the project at index
func RemoveTechnology(r types.ResumeData, index int, tech string) (types.ResumeData, error) {
	if index < 0 || index >= len(r.Projects) {
		return r, fmt.Errorf("project %d of %d: %w", index, len(r.Projects), ErrIndexOutOfRange)
	}
	out := Clone(r)
	out.Projects[index].Technologies = without(out.Projects[index].Technologies, tech)
	return out, nil
}

// AddCertification appends a certification
func AddCertification(r types.ResumeData, c types.CertificationItem) types.ResumeData {
	out := Clone(r)
	out.Certifications = addItem(out.Certifications, c)
	return out
}

// UpdateCertification replaces the certification at index
func UpdateCertification(r types.ResumeData, index int, c types.CertificationItem) (types.ResumeData, error) {
	out := Clone(r)
	list, err := updateItem(out.Certifications, index, c)
	if err != nil {
		return r, err
	}
	out.Certifications = list
	return out, nil
}

// RemoveCertification drops the certification with id
func RemoveCertification(r types.ResumeData, id string) types.ResumeData {
	out := Clone(r)
	out.Certifications = removeItem(out.Certifications, id)
	return out
}

// MoveCertification reorders certifications
func MoveCertification(r types.ResumeData, from, to int) (types.ResumeData, error) {
	out := Clone(r)
	list, err := moveItem(out.Certifications, from, to)
	if err != nil {
		return r, err
	}
	out.Certifications = list
	return out, nil
}
