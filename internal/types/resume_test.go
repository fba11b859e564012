//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceLevel(t *testing.T) {
	for _, s := range []string{"entry", "mid", "senior"} {
		level, err := ParseExperienceLevel(s)
		require.NoError(t, err)
		assert.Equal(t, ExperienceLevel(s), level)
	}

	_, err := ParseExperienceLevel("principal")
	assert.Error(t, err)
}

func TestResumeData_JSONFieldNames(t *testing.T) {
	data := ResumeData{
		PersonalInfo: PersonalInfo{FirstName: "Ada", LinkedIn: "linkedin.com/in/ada"},
		Experience: []ExperienceItem{
			{ID: "exp1", Position: "Engineer", StartDate: "2020-01", Bullets: []string{"Shipped"}},
		},
		Education:       []EducationItem{{ID: "edu1", FieldOfStudy: "Math"}},
		ExperienceLevel: LevelMid,
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, `"personalInfo"`)
	assert.Contains(t, s, `"firstName":"Ada"`)
	assert.Contains(t, s, `"linkedin":"linkedin.com/in/ada"`)
	assert.Contains(t, s, `"startDate":"2020-01"`)
	assert.Contains(t, s, `"fieldOfStudy":"Math"`)
	assert.Contains(t, s, `"experienceLevel":"mid"`)
	assert.NotContains(t, s, `"gpa"`, "optional education fields are omitted when empty")
}

func TestResumeData_Validate(t *testing.T) {
	valid := ResumeData{
		PersonalInfo:    PersonalInfo{Email: "ada@example.com"},
		ExperienceLevel: LevelSenior,
	}
	assert.NoError(t, valid.Validate())

	badEmail := ResumeData{PersonalInfo: PersonalInfo{Email: "not-an-email"}}
	assert.Error(t, badEmail.Validate())

	badLevel := ResumeData{ExperienceLevel: "principal"}
	assert.Error(t, badLevel.Validate())

	assert.NoError(t, (&ResumeData{}).Validate(), "empty resume is valid")
}

func TestGenerateResumeForm_Validation(t *testing.T) {
	longJD := strings.Repeat("We need a backend engineer. ", 3)

	tests := []struct {
		name      string
		form      GenerateResumeForm
		wantField string
	}{
		{
			name: "only job description",
			form: GenerateResumeForm{JobDescription: longJD},
		},
		{
			name: "all fields",
			form: GenerateResumeForm{
				Name:           "Ada Lovelace",
				Email:          "ada@example.com",
				LinkedIn:       "https://linkedin.com/in/ada",
				Education:      "BSc Mathematics, University of London",
				JobDescription: longJD,
			},
		},
		{
			name: "job url instead of description",
			form: GenerateResumeForm{JobURL: "https://jobs.example.com/1"},
		},
		{
			name:      "missing job description",
			form:      GenerateResumeForm{Name: "Ada Lovelace"},
			wantField: "jobDescription",
		},
		{
			name:      "short job description",
			form:      GenerateResumeForm{JobDescription: "too short"},
			wantField: "jobDescription",
		},
		{
			name:      "short name",
			form:      GenerateResumeForm{Name: "A", JobDescription: longJD},
			wantField: "name",
		},
		{
			name:      "bad email",
			form:      GenerateResumeForm{Email: "nope", JobDescription: longJD},
			wantField: "email",
		},
		{
			name:      "bad linkedin",
			form:      GenerateResumeForm{LinkedIn: "not a url", JobDescription: longJD},
			wantField: "linkedin",
		},
		{
			name:      "short education",
			form:      GenerateResumeForm{Education: "BSc", JobDescription: longJD},
			wantField: "education",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := FieldMessages(err)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestGenerateResumeForm_ToRequestDefaults(t *testing.T) {
	form := GenerateResumeForm{JobDescription: "Build things"}
	req := form.ToRequest()

	assert.Equal(t, DefaultCandidateName, req.Name)
	assert.Equal(t, DefaultCandidateEmail, req.Email)
	assert.Equal(t, DefaultCandidateLinkedIn, req.LinkedIn)
	assert.Equal(t, DefaultCandidateEducation, req.Education)
	assert.Equal(t, "Build things", req.JobDescription)

	form.Name = "Ada"
	assert.Equal(t, "Ada", form.ToRequest().Name)
}

func TestEmptySuggestions(t *testing.T) {
	s := EmptySuggestions()
	assert.True(t, s.IsEmpty())

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"","experience":[],"skills":[]}`, string(raw))

	s.Skills = append(s.Skills, "Go")
	assert.False(t, s.IsEmpty())
}
