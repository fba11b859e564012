package resume

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// ErrNoSuggestion is returned when the requested suggestion does not exist
var ErrNoSuggestion = errors.New("no suggestion to apply")

// ApplySuggestion applies one suggestion to the resume.
//
// A summary suggestion replaces the summary. Experience suggestion index replaces the description
// of the experience item at the same index. Skill suggestion index is appended to the skills
// unless already present.
func ApplySuggestion(r types.ResumeData, s types.Suggestions, section string, index int) (types.ResumeData, error) {
	switch section {
	case types.SectionSummary:
		if s.Summary == "" {
			return r, ErrNoSuggestion
		}
		return SetSummary(r, s.Summary), nil

	case types.SectionExperience:
		if index < 0 || index >= len(s.Experience) {
			return r, fmt.Errorf("experience suggestion %d: %w", index, ErrNoSuggestion)
		}
		if index >= len(r.Experience) {
			return r, fmt.Errorf("experience item %d of %d: %w", index, len(r.Experience), ErrIndexOutOfRange)
		}
		out := Clone(r)
		out.Experience[index].Description = s.Experience[index]
		return out, nil

	case types.SectionSkills:
		if index < 0 || index >= len(s.Skills) {
			return r, fmt.Errorf("skill suggestion %d: %w", index, ErrNoSuggestion)
		}
		return AddSkill(r, s.Skills[index]), nil
	}
	return r, fmt.Errorf("unknown suggestion section %q", section)
}

// AcceptEnhancement marks enhancement i as accepted
func AcceptEnhancement(list []types.AIEnhancement, i int) ([]types.AIEnhancement, error) {
	return setAccepted(list, i, true)
}

// RejectEnhancement clears the accepted mark on enhancement i
func RejectEnhancement(list []types.AIEnhancement, i int) ([]types.AIEnhancement, error) {
	return setAccepted(list, i, false)
}

func setAccepted(list []types.AIEnhancement, i int, accepted bool) ([]types.AIEnhancement, error) {
	if i < 0 || i >= len(list) {
		return list, fmt.Errorf("enhancement %d of %d: %w", i, len(list), ErrIndexOutOfRange)
	}
	out := append([]types.AIEnhancement{}, list...)
	out[i].Accepted = accepted
	return out, nil
}

// ApplyEnhancements applies every accepted enhancement in order.
// Experience enhancements without a matching experience item are skipped.
func ApplyEnhancements(r types.ResumeData, list []types.AIEnhancement) types.ResumeData {
	out := Clone(r)
	for _, e := range list {
		if !e.Accepted {
			continue
		}
		switch e.Section {
		case types.SectionSummary:
			out.Summary = e.Suggested
		case types.SectionExperience:
			if e.Index >= 0 && e.Index < len(out.Experience) {
				out.Experience[e.Index].Description = e.Suggested
			}
		case types.SectionSkills:
			out = AddSkill(out, e.Suggested)
		}
	}
	return out
}
