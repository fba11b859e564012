package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func sampleSuggestions() types.Suggestions {
	return types.Suggestions{
		Summary:    "Sharper summary",
		Experience: []string{"Led the platform team", "Shipped the redesign"},
		Skills:     []string{"Go", "React"},
	}
}

func TestApplySuggestion(t *testing.T) {
	r := Sample()
	s := sampleSuggestions()

	got, err := ApplySuggestion(r, s, types.SectionSummary, 0)
	require.NoError(t, err)
	assert.Equal(t, "Sharper summary", got.Summary)

	got, err = ApplySuggestion(r, s, types.SectionExperience, 1)
	require.NoError(t, err)
	assert.Equal(t, "Shipped the redesign", got.Experience[1].Description)
	assert.Equal(t, r.Experience[0].Description, got.Experience[0].Description)

	got, err = ApplySuggestion(r, s, types.SectionSkills, 0)
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, r.Skills...), "Go"), got.Skills)

	got, err = ApplySuggestion(r, s, types.SectionSkills, 1)
	require.NoError(t, err)
	assert.Equal(t, r.Skills, got.Skills, "React is already listed")
}

func TestApplySuggestion_Errors(t *testing.T) {
	r := New()
	s := sampleSuggestions()

	_, err := ApplySuggestion(r, types.EmptySuggestions(), types.SectionSummary, 0)
	assert.ErrorIs(t, err, ErrNoSuggestion)

	_, err = ApplySuggestion(r, s, types.SectionExperience, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange, "no experience item to receive the description")

	_, err = ApplySuggestion(r, s, types.SectionExperience, 9)
	assert.ErrorIs(t, err, ErrNoSuggestion)

	_, err = ApplySuggestion(r, s, types.SectionSkills, -1)
	assert.ErrorIs(t, err, ErrNoSuggestion)

	_, err = ApplySuggestion(r, s, "hobbies", 0)
	assert.Error(t, err)
}

func TestEnhancements(t *testing.T) {
	list := []types.AIEnhancement{
		{Section: types.SectionSummary, Original: "old", Suggested: "new summary"},
		{Section: types.SectionExperience, Suggested: "new description", Index: 0},
		{Section: types.SectionExperience, Suggested: "orphan", Index: 7},
		{Section: types.SectionSkills, Suggested: "Go"},
	}

	accepted, err := AcceptEnhancement(list, 0)
	require.NoError(t, err)
	accepted, err = AcceptEnhancement(accepted, 1)
	require.NoError(t, err)
	accepted, err = AcceptEnhancement(accepted, 2)
	require.NoError(t, err)
	accepted, err = AcceptEnhancement(accepted, 3)
	require.NoError(t, err)
	accepted, err = RejectEnhancement(accepted, 3)
	require.NoError(t, err)

	assert.False(t, list[0].Accepted, "input list untouched")

	r := ApplyEnhancements(Sample(), accepted)
	assert.Equal(t, "new summary", r.Summary)
	assert.Equal(t, "new description", r.Experience[0].Description)
	assert.NotContains(t, r.Skills, "Go", "rejected enhancement not applied")

	_, err = AcceptEnhancement(list, 4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
