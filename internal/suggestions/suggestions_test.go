package suggestions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

type fakeClient struct {
	content string
	err     error
	calls   []llm.ChatRequest
}

func (f *fakeClient) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Content: f.content}, nil
}

func (f *fakeClient) Model() string { return "fake" }
func (f *fakeClient) Close() error  { return nil }

func TestParseAISuggestions_Canonical(t *testing.T) {
	got := ParseAISuggestions("Summary: X\n\nRequired experience: Y\n\nSkills:\n- A\n- B")

	assert.Contains(t, got.Summary, "Summary: X")
	assert.Equal(t, []string{"Y"}, got.Experience)
	assert.Equal(t, []string{"A", "B"}, got.Skills)
}

func TestParseAISuggestions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Suggestions
	}{
		{
			name: "empty text",
			text: "",
			want: types.EmptySuggestions(),
		},
		{
			name: "no matching paragraphs",
			text: "Looks great.\n\nNothing to add.",
			want: types.EmptySuggestions(),
		},
		{
			name: "first summary paragraph wins and is kept verbatim",
			text: "1. Professional SUMMARY:\nDriven engineer.\n\nAnother summary here",
			want: types.Suggestions{
				Summary:    "1. Professional SUMMARY:\nDriven engineer.",
				Experience: []string{},
				Skills:     []string{},
			},
		},
		{
			name: "every experience paragraph collected",
			text: "Experience: Led a team\n\n2. Improved Experience: Cut costs by 20%\n\nMore experience needed",
			want: types.Suggestions{
				Experience: []string{"Led a team", "Cut costs by 20%", "More experience needed"},
				Skills:     []string{},
			},
		},
		{
			name: "experience prefix only stripped on the first line",
			text: "Work notes\nexperience: keep me",
			want: types.Suggestions{
				Experience: []string{"Work notes\nexperience: keep me"},
				Skills:     []string{},
			},
		},
		{
			name: "skills bullets and heading dropped",
			text: "3. Additional Skills\n* Go\n• Rust\n\n-  Kubernetes\nplain",
			want: types.Suggestions{
				Experience: []string{},
				Skills:     []string{"Go", "Rust"},
			},
		},
		{
			name: "indented bullets keep their marker",
			text: "Skills:\n  - Go",
			want: types.Suggestions{
				Experience: []string{},
				Skills:     []string{"- Go"},
			},
		},
		{
			name: "lines mentioning skills are filtered",
			text: "Skills to add:\n- Go\n- Soft skills like mentoring",
			want: types.Suggestions{
				Experience: []string{},
				Skills:     []string{"Go"},
			},
		},
		{
			name: "a paragraph can land in several buckets",
			text: "Summary of experience: strong",
			want: types.Suggestions{
				Summary:    "Summary of experience: strong",
				Experience: []string{"strong"},
				Skills:     []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAISuggestions(tt.text))
		})
	}
}

func TestService_MissingKey(t *testing.T) {
	svc, err := NewServiceFromConfig(context.Background(), llm.DefaultOpenRouterConfig("", ""))
	require.NoError(t, err)
	assert.False(t, svc.Enabled())

	got := svc.GetAISuggestions(context.Background(), "resume", "Engineer")
	assert.Equal(t, types.EmptySuggestions(), got)
}

func TestService_NilService(t *testing.T) {
	var svc *Service
	assert.Equal(t, types.EmptySuggestions(), svc.GetAISuggestions(context.Background(), "r", "t"))
	assert.NoError(t, svc.Close())
}

func TestService_ProviderErrorIsSoft(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	svc := NewService(client)

	got := svc.GetAISuggestions(context.Background(), "resume", "Engineer")
	assert.Equal(t, types.EmptySuggestions(), got)
	assert.Len(t, client.calls, 1)
}

func TestService_EmptyCompletionIsSoft(t *testing.T) {
	svc := NewService(&fakeClient{})
	assert.Equal(t, types.EmptySuggestions(), svc.GetAISuggestions(context.Background(), "resume", "Engineer"))
}

func TestService_Success(t *testing.T) {
	client := &fakeClient{content: "Summary: Sharper summary\n\nExperience: Led migrations\n\nSkills:\n- Go"}
	svc := NewService(client)

	got := svc.GetAISuggestions(context.Background(), "My resume text", "Platform Engineer")

	assert.Equal(t, "Summary: Sharper summary", got.Summary)
	assert.Equal(t, []string{"Led migrations"}, got.Experience)
	assert.Equal(t, []string{"Go"}, got.Skills)

	require.Len(t, client.calls, 1)
	assert.Contains(t, client.calls[0].System, "expert resume reviewer")
	assert.Contains(t, client.calls[0].User, "Platform Engineer position")
	assert.Contains(t, client.calls[0].User, "My resume text")
}

func TestToEnhancements(t *testing.T) {
	resume := types.ResumeData{
		Summary: "Old summary",
		Experience: []types.ExperienceItem{
			{ID: "exp1", Description: "Old description"},
		},
		Skills: []string{"Go"},
	}
	s := types.Suggestions{
		Summary:    "New summary",
		Experience: []string{"New description", "Extra"},
		Skills:     []string{"Go", "Rust"},
	}

	got := ToEnhancements(resume, s)

	require.Len(t, got, 4)
	assert.Equal(t, types.AIEnhancement{Section: types.SectionSummary, Original: "Old summary", Suggested: "New summary"}, got[0])
	assert.Equal(t, types.AIEnhancement{Section: types.SectionExperience, Original: "Old description", Suggested: "New description"}, got[1])
	assert.Equal(t, types.AIEnhancement{Section: types.SectionExperience, Suggested: "Extra", Index: 1}, got[2])
	assert.Equal(t, types.AIEnhancement{Section: types.SectionSkills, Suggested: "Rust", Index: 1}, got[3])
}

func TestToEnhancements_SkillSpellings(t *testing.T) {
	resume := types.ResumeData{Skills: []string{"Go", "k8s"}}
	s := types.Suggestions{Skills: []string{"golang", "Kubernetes", "Rust", "RUST"}}

	got := ToEnhancements(resume, s)

	require.Len(t, got, 1)
	assert.Equal(t, types.AIEnhancement{Section: types.SectionSkills, Suggested: "Rust", Index: 2}, got[0])
}

func TestToEnhancements_Empty(t *testing.T) {
	got := ToEnhancements(types.ResumeData{}, types.EmptySuggestions())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
