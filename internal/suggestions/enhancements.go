package suggestions

import (
	"github.com/jonathan/resume-builder/internal/skills"
	"github.com/jonathan/resume-builder/internal/types"
)

// ToEnhancements pairs each suggestion with the resume text it would replace.
//
// Experience suggestions target the experience item at the same position. Skills already on
// the resume, or suggested earlier, under any common spelling are skipped. Index always refers
// to the position within the suggestion bucket.
func ToEnhancements(resume types.ResumeData, s types.Suggestions) []types.AIEnhancement {
	out := []types.AIEnhancement{}

	if s.Summary != "" {
		out = append(out, types.AIEnhancement{
			Section:   types.SectionSummary,
			Original:  resume.Summary,
			Suggested: s.Summary,
		})
	}

	for i, suggested := range s.Experience {
		original := ""
		if i < len(resume.Experience) {
			original = resume.Experience[i].Description
		}
		out = append(out, types.AIEnhancement{
			Section:   types.SectionExperience,
			Original:  original,
			Suggested: suggested,
			Index:     i,
		})
	}

	have := skills.NewSet(resume.Skills)
	for i, skill := range s.Skills {
		if have.Has(skill) {
			continue
		}
		have.Add(skill)
		out = append(out, types.AIEnhancement{
			Section:   types.SectionSkills,
			Suggested: skill,
			Index:     i,
		})
	}

	return out
}
