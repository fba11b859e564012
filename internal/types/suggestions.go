//nolint:revive // types is a standard Go package name pattern
package types

// Suggestion sections
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionSkills     = "skills"
)

// Suggestions holds LLM suggestions bucketed by resume section
type Suggestions struct {
	Summary    string   `json:"summary"`
	Experience []string `json:"experience"`
	Skills     []string `json:"skills"`
}

// EmptySuggestions returns suggestions with every bucket empty (never nil slices)
func EmptySuggestions() Suggestions {
	return Suggestions{
		Summary:    "",
		Experience: []string{},
		Skills:     []string{},
	}
}

// IsEmpty reports whether no bucket carries a suggestion
func (s Suggestions) IsEmpty() bool {
	return s.Summary == "" && len(s.Experience) == 0 && len(s.Skills) == 0
}

// AIEnhancement is a proposed original→suggested text change for one section
type AIEnhancement struct {
	Section   string `json:"section"`
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
	Accepted  bool   `json:"accepted"`
	// Index points at the experience item or skill slot the change targets (0 for summary)
	Index int `json:"index"`
}
