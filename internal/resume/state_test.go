package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func experienceIDs(r types.ResumeData) []string {
	ids := make([]string, 0, len(r.Experience))
	for _, e := range r.Experience {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestNew(t *testing.T) {
	r := New()
	assert.Equal(t, types.LevelMid, r.ExperienceLevel)
	assert.NotNil(t, r.Experience)
	assert.NotNil(t, r.Skills)
	assert.NoError(t, r.Validate())
}

func TestSample_IsValid(t *testing.T) {
	r := Sample()
	assert.NoError(t, r.Validate())
	assert.Equal(t, EnsureIDs(r), r, "sample ids are already unique")
}

func TestActions_DoNotMutateInput(t *testing.T) {
	before := Sample()
	snapshot := Clone(before)

	_ = SetSummary(before, "changed")
	_ = AddSkill(before, "Rust")
	_ = RemoveSkill(before, "Git")
	_ = AddExperience(before, types.ExperienceItem{Company: "New Co"})
	_ = RemoveExperience(before, "exp1")
	_, _ = MoveExperience(before, 0, 1)
	_, _ = UpdateExperience(before, 0, types.ExperienceItem{Company: "Other", Bullets: []string{"x"}})
	_, _ = AddTechnology(before, 0, "Go")
	_, _ = RemoveTechnology(before, 0, "React")
	_ = RemoveProject(before, "proj1")
	_ = RemoveCertification(before, "cert1")

	assert.Equal(t, snapshot, before)
}

func TestAddExperience_AssignsIDs(t *testing.T) {
	r := New()
	r = AddExperience(r, types.ExperienceItem{Company: "A"})
	r = AddExperience(r, types.ExperienceItem{ID: "fixed", Company: "B"})
	r = AddExperience(r, types.ExperienceItem{ID: "fixed", Company: "C"})

	require.Len(t, r.Experience, 3)
	assert.NotEmpty(t, r.Experience[0].ID)
	assert.Equal(t, "fixed", r.Experience[1].ID)
	assert.NotEqual(t, "fixed", r.Experience[2].ID, "duplicate id replaced")
	assert.Len(t, uniq(experienceIDs(r)), 3)
}

func TestUpdateExperience_KeepsID(t *testing.T) {
	r := Sample()
	updated, err := UpdateExperience(r, 1, types.ExperienceItem{ID: "ignored", Company: "Renamed"})
	require.NoError(t, err)

	assert.Equal(t, "exp2", updated.Experience[1].ID)
	assert.Equal(t, "Renamed", updated.Experience[1].Company)

	_, err = UpdateExperience(r, 5, types.ExperienceItem{})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMoveExperience(t *testing.T) {
	r := New()
	for _, id := range []string{"a", "b", "c"} {
		r = AddExperience(r, types.ExperienceItem{ID: id})
	}

	moved, err := MoveExperience(r, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, experienceIDs(moved))

	moved, err = MoveExperience(r, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, experienceIDs(moved))

	_, err = MoveExperience(r, 0, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = MoveExperience(r, -1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRemoveByID(t *testing.T) {
	r := Sample()

	r = RemoveExperience(r, "exp1")
	assert.Equal(t, []string{"exp2"}, experienceIDs(r))

	r = RemoveExperience(r, "missing")
	assert.Len(t, r.Experience, 1)

	r = RemoveEducation(r, "edu1")
	assert.Empty(t, r.Education)
	r = RemoveProject(r, "proj2")
	assert.Len(t, r.Projects, 1)
	r = RemoveCertification(r, "cert1")
	assert.Empty(t, r.Certifications)
}

func TestEducationProjectCertificationActions(t *testing.T) {
	r := New()
	r = AddEducation(r, types.EducationItem{Institution: "MIT"})
	r = AddProject(r, types.ProjectItem{Title: "CLI"})
	r = AddCertification(r, types.CertificationItem{Name: "CKA"})

	r, err := UpdateEducation(r, 0, types.EducationItem{Institution: "Stanford"})
	require.NoError(t, err)
	assert.Equal(t, "Stanford", r.Education[0].Institution)
	assert.NotEmpty(t, r.Education[0].ID)

	r, err = UpdateProject(r, 0, types.ProjectItem{Title: "Server"})
	require.NoError(t, err)
	assert.Equal(t, "Server", r.Projects[0].Title)

	r, err = UpdateCertification(r, 0, types.CertificationItem{Name: "CKAD"})
	require.NoError(t, err)
	assert.Equal(t, "CKAD", r.Certifications[0].Name)

	_, err = MoveEducation(r, 0, 0)
	assert.NoError(t, err)
	_, err = MoveProject(r, 0, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = MoveCertification(r, 1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTechnologies(t *testing.T) {
	r := AddProject(New(), types.ProjectItem{Title: "CLI"})

	r, err := AddTechnology(r, 0, "  Go ")
	require.NoError(t, err)
	r, err = AddTechnology(r, 0, "Go")
	require.NoError(t, err)
	r, err = AddTechnology(r, 0, " ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, r.Projects[0].Technologies)

	r, err = RemoveTechnology(r, 0, "Go")
	require.NoError(t, err)
	assert.Empty(t, r.Projects[0].Technologies)

	_, err = AddTechnology(r, 3, "Go")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSkills(t *testing.T) {
	r := New()
	r = AddSkill(r, " Go ")
	r = AddSkill(r, "Go")
	r = AddSkill(r, "")
	r = AddSkill(r, "Rust")
	assert.Equal(t, []string{"Go", "Rust"}, r.Skills)

	r = RemoveSkill(r, "Go")
	assert.Equal(t, []string{"Rust"}, r.Skills)
}

func TestSetters(t *testing.T) {
	r := SetPersonalInfo(New(), types.PersonalInfo{FirstName: "Ada"})
	r = SetSummary(r, "Mathematician")
	r = SetTargetRole(r, "Analyst")

	r, err := SetExperienceLevel(r, types.LevelSenior)
	require.NoError(t, err)

	assert.Equal(t, "Ada", r.PersonalInfo.FirstName)
	assert.Equal(t, "Mathematician", r.Summary)
	assert.Equal(t, "Analyst", r.TargetRole)
	assert.Equal(t, types.LevelSenior, r.ExperienceLevel)

	_, err = SetExperienceLevel(r, "principal")
	assert.Error(t, err)
}

func TestFromExtracted(t *testing.T) {
	ex := &types.ExtractedResume{
		PersonalInfo: types.PersonalInfo{Email: "ada@example.com"},
		Skills:       []string{"Go", "Rust"},
	}

	r := FromExtracted(ex)
	assert.Equal(t, "ada@example.com", r.PersonalInfo.Email)
	assert.Equal(t, []string{"Go", "Rust"}, r.Skills)
	assert.Equal(t, types.LevelEntry, r.ExperienceLevel)
	assert.Empty(t, r.TargetRole)
	assert.NotNil(t, r.Experience)

	assert.Equal(t, types.LevelEntry, FromExtracted(nil).ExperienceLevel)
}

func TestMergeExtracted(t *testing.T) {
	r := New()
	r = SetPersonalInfo(r, types.PersonalInfo{FirstName: "Ada", Email: "kept@example.com"})
	r = AddSkill(r, "Go")

	ex := &types.ExtractedResume{
		PersonalInfo: types.PersonalInfo{Email: "new@example.com", Phone: "555-0100"},
		Skills:       []string{"Go", "Rust"},
		Experience:   []types.ExperienceItem{{Company: "Acme"}},
	}

	merged := MergeExtracted(r, ex)
	assert.Equal(t, "Ada", merged.PersonalInfo.FirstName)
	assert.Equal(t, "kept@example.com", merged.PersonalInfo.Email)
	assert.Equal(t, "555-0100", merged.PersonalInfo.Phone)
	assert.Equal(t, []string{"Go", "Rust"}, merged.Skills)
	require.Len(t, merged.Experience, 1)
	assert.NotEmpty(t, merged.Experience[0].ID)
}

func TestEnsureIDs(t *testing.T) {
	r := New()
	r.Experience = []types.ExperienceItem{{ID: "a"}, {ID: ""}, {ID: "a"}, {ID: "b"}}
	r.Projects = []types.ProjectItem{{ID: "p"}, {ID: "p"}}

	fixed := EnsureIDs(r)

	ids := experienceIDs(fixed)
	assert.Equal(t, "a", ids[0], "first occurrence keeps its id")
	assert.Equal(t, "b", ids[3])
	assert.Len(t, uniq(ids), 4)
	assert.NotEqual(t, fixed.Projects[0].ID, fixed.Projects[1].ID)

	assert.Equal(t, "", r.Experience[1].ID, "input untouched")
}

func uniq(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
