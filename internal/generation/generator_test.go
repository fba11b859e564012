package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
)

const sampleResume = `{"professionalSummary":"Backend engineer focused on distributed systems","keySkills":["Go","Kubernetes"],"professionalExperience":[{"title":"Senior Engineer","company":"Acme","duration":"2020 - Present","achievements":["Cut p99 latency by 40%"]}],"projects":[{"name":"Queue","description":"Durable queue","technologies":["Go"]}],"certifications":["CKA"],"additionalSkills":["Terraform"]}`

// scriptedClient answers each Chat call with the next scripted reply
type scriptedClient struct {
	mu      sync.Mutex
	replies []reply
	calls   []llm.ChatRequest
}

type reply struct {
	content string
	err     error
}

func (c *scriptedClient) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, req)
	if len(c.replies) == 0 {
		return nil, errors.New("unexpected call")
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &llm.ChatResponse{Raw: json.RawMessage(`{}`), Content: r.content}, nil
}

func (c *scriptedClient) Model() string { return "scripted" }
func (c *scriptedClient) Close() error  { return nil }

type staticFetcher struct {
	text string
	err  error
	url  string
}

func (f *staticFetcher) JobDescription(_ context.Context, url string) (string, error) {
	f.url = url
	return f.text, f.err
}

func testRequest() types.GenerateResumeRequest {
	return types.GenerateResumeRequest{
		Name:           "Ada Lovelace",
		Email:          "ada@example.com",
		LinkedIn:       "https://linkedin.com/in/ada",
		Education:      "BSc Mathematics, University of London",
		JobDescription: "We need a Go engineer with Kubernetes experience.",
	}
}

func TestGenerate_Success(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{content: "Skills: Go, Kubernetes"},
		{content: sampleResume},
	}}
	var events []ProgressEvent

	result, err := New(client).GenerateWithProgress(context.Background(), testRequest(), func(e ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	assert.Equal(t, "Skills: Go, Kubernetes", result.JobAnalysis)
	assert.Equal(t, "Backend engineer focused on distributed systems", result.Resume.ProfessionalSummary)
	assert.Equal(t, []string{"Go", "Kubernetes"}, result.Resume.KeySkills)
	require.Len(t, result.Resume.ProfessionalExperience, 1)
	assert.Equal(t, "Acme", result.Resume.ProfessionalExperience[0].Company)
	assert.JSONEq(t, sampleResume, string(result.Raw))

	require.Len(t, client.calls, 2)
	assert.Equal(t, "You are a helpful assistant that analyzes job descriptions.", client.calls[0].System)
	assert.Contains(t, client.calls[0].User, "We need a Go engineer")
	assert.Contains(t, client.calls[1].System, "valid JSON only")
	assert.Contains(t, client.calls[1].User, "Name: Ada Lovelace")
	assert.Contains(t, client.calls[1].User, "Skills: Go, Kubernetes", "analysis feeds the second prompt")

	assert.Equal(t, []ProgressEvent{
		{Stage: StageAnalysis, Message: MessageAnalyzing},
		{Stage: StageResume, Message: MessageTailoring},
		{Stage: StageResume, Message: MessageDrafting},
	}, events)
}

func TestGenerate_WrappedJSON(t *testing.T) {
	client := &scriptedClient{replies: []reply{
		{content: "analysis"},
		{content: "Here is the resume:\n```json\n" + sampleResume + "\n```\nLet me know!"},
	}}

	result, err := New(client).Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes"}, result.Resume.KeySkills)
}

func TestGenerate_Failures(t *testing.T) {
	upstream := &llm.UpstreamError{Provider: llm.ProviderAwan, StatusCode: 502, Body: "bad gateway"}

	tests := []struct {
		name      string
		replies   []reply
		wantCalls int
		check     func(t *testing.T, err error)
	}{
		{
			name:      "analysis upstream error",
			replies:   []reply{{err: upstream}},
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var stageErr *StageError
				require.ErrorAs(t, err, &stageErr)
				assert.Equal(t, StageAnalysis, stageErr.Stage)
				assert.ErrorIs(t, err, upstream)
				assert.Contains(t, err.Error(), "failed to analyze job description")
				assert.Contains(t, err.Error(), "bad gateway")
			},
		},
		{
			name:      "analysis without content",
			replies:   []reply{{content: ""}},
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var shapeErr *ResponseShapeError
				require.ErrorAs(t, err, &shapeErr)
				assert.Equal(t, StageAnalysis, shapeErr.Stage)
			},
		},
		{
			name:      "resume upstream error",
			replies:   []reply{{content: "analysis"}, {err: upstream}},
			wantCalls: 2,
			check: func(t *testing.T, err error) {
				var stageErr *StageError
				require.ErrorAs(t, err, &stageErr)
				assert.Equal(t, StageResume, stageErr.Stage)
				assert.Contains(t, err.Error(), "failed to generate resume")
			},
		},
		{
			name:      "resume is prose",
			replies:   []reply{{content: "analysis"}, {content: "I cannot produce JSON today."}},
			wantCalls: 2,
			check: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, "no valid JSON found in the response", parseErr.Error())
			},
		},
		{
			name:      "resume braces are not JSON",
			replies:   []reply{{content: "analysis"}, {content: "{professionalSummary: 'x'}"}},
			wantCalls: 2,
			check: func(t *testing.T, err error) {
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, "failed to parse generated resume content", parseErr.Error())
			},
		},
		{
			name:      "resume missing skills array",
			replies:   []reply{{content: "analysis"}, {content: `{"professionalSummary":"x","keySkills":"Go"}`}},
			wantCalls: 2,
			check: func(t *testing.T, err error) {
				var structErr *StructureError
				require.ErrorAs(t, err, &structErr)
				assert.Equal(t, "invalid resume content structure", err.Error())
			},
		},
		{
			name:      "missing key",
			replies:   []reply{{err: &llm.MissingKeyError{Provider: llm.ProviderAwan}}},
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var cfgErr *ConfigError
				require.ErrorAs(t, err, &cfgErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedClient{replies: tt.replies}
			result, err := New(client).Generate(context.Background(), testRequest())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Len(t, client.calls, tt.wantCalls, "no retries")
			tt.check(t, err)
		})
	}
}

func TestGenerate_NilClient(t *testing.T) {
	_, err := New(nil).Generate(context.Background(), testRequest())

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestGenerate_JobURL(t *testing.T) {
	client := &scriptedClient{replies: []reply{{content: "analysis"}, {content: sampleResume}}}
	fetcher := &staticFetcher{text: "Fetched: Staff Go engineer wanted"}

	req := testRequest()
	req.JobDescription = ""
	req.JobURL = "https://jobs.example.com/42"

	var events []ProgressEvent
	_, err := New(client, WithFetcher(fetcher)).GenerateWithProgress(context.Background(), req, func(e ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	assert.Equal(t, "https://jobs.example.com/42", fetcher.url)
	assert.Contains(t, client.calls[0].User, "Fetched: Staff Go engineer wanted")
	assert.Equal(t, StageFetch, events[0].Stage)
}

func TestGenerate_JobURLFetchFails(t *testing.T) {
	client := &scriptedClient{}
	fetcher := &staticFetcher{err: errors.New("404")}

	req := testRequest()
	req.JobDescription = ""
	req.JobURL = "https://jobs.example.com/42"

	_, err := New(client, WithFetcher(fetcher)).Generate(context.Background(), req)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageFetch, stageErr.Stage)
	assert.Empty(t, client.calls)
}

func TestGenerate_JobURLWithoutFetcher(t *testing.T) {
	req := testRequest()
	req.JobDescription = ""
	req.JobURL = "https://jobs.example.com/42"

	_, err := New(&scriptedClient{}).Generate(context.Background(), req)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestGenerate_AgainstCompletionsServer(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			t.Error("resume stage must not run after a failed analysis")
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	client, err := llm.NewCompletionsClientWithHTTP(llm.DefaultAwanConfig("k").WithBaseURL(srv.URL), srv.Client())
	require.NoError(t, err)

	_, err = New(client).Generate(context.Background(), testRequest())
	require.Error(t, err)

	var upstream *llm.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, int32(1), calls.Load())
}

func TestParseResumeContent_RoundTrip(t *testing.T) {
	direct, err := ParseResumeContent(sampleResume)
	require.NoError(t, err)

	// Feed the well-formed output back through the extraction fallback
	viaFallback, err := ParseResumeContent("Sure! " + string(direct) + " Anything else?")
	require.NoError(t, err)
	assert.JSONEq(t, string(direct), string(viaFallback))

	again, err := ParseResumeContent(string(viaFallback))
	require.NoError(t, err)
	assert.Equal(t, string(viaFallback), string(again))

	first, err := ValidateResumeContent(direct)
	require.NoError(t, err)
	second, err := ValidateResumeContent(viaFallback)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseResumeContent_KeepsKeyOrder(t *testing.T) {
	raw, err := ParseResumeContent("{\n  \"keySkills\": [],\n  \"professionalSummary\": \"x\"\n}")
	require.NoError(t, err)
	assert.Equal(t, `{"keySkills":[],"professionalSummary":"x"}`, string(raw))
}

func TestValidateResumeContent(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError bool
		check     func(t *testing.T, resume *types.GeneratedResume)
	}{
		{
			name:    "minimal",
			content: `{"professionalSummary":"x","keySkills":[]}`,
			check: func(t *testing.T, resume *types.GeneratedResume) {
				assert.Equal(t, "x", resume.ProfessionalSummary)
			},
		},
		{
			name:    "certifications as objects",
			content: `{"professionalSummary":"x","keySkills":["a"],"certifications":[{"name":"AWS","issuer":"Amazon"}]}`,
			check: func(t *testing.T, resume *types.GeneratedResume) {
				assert.Equal(t, "x", resume.ProfessionalSummary)
				assert.Equal(t, []string{"a"}, resume.KeySkills)
			},
		},
		{
			name:    "skills as objects",
			content: `{"professionalSummary":"x","keySkills":[{"skill":"Go"}]}`,
			check: func(t *testing.T, resume *types.GeneratedResume) {
				assert.Equal(t, "x", resume.ProfessionalSummary)
			},
		},
		{
			name:    "numeric duration",
			content: `{"professionalSummary":"x","keySkills":[],"professionalExperience":[{"title":"t","duration":2020}]}`,
			check: func(t *testing.T, resume *types.GeneratedResume) {
				require.Len(t, resume.ProfessionalExperience, 1)
				assert.Equal(t, "t", resume.ProfessionalExperience[0].Title)
				assert.Empty(t, resume.ProfessionalExperience[0].Duration)
			},
		},
		{
			name:    "unknown keys",
			content: `{"professionalSummary":"x","keySkills":["Go"],"languages":["English"],"awards":{"2021":"Hackathon"}}`,
			check: func(t *testing.T, resume *types.GeneratedResume) {
				assert.Equal(t, []string{"Go"}, resume.KeySkills)
			},
		},
		{
			name:    "non-string summary",
			content: `{"professionalSummary":{"headline":"Engineer"},"keySkills":[]}`,
			check: func(t *testing.T, resume *types.GeneratedResume) {
				assert.Empty(t, resume.ProfessionalSummary)
			},
		},
		{name: "empty summary", content: `{"professionalSummary":"","keySkills":[]}`, wantError: true},
		{name: "null summary", content: `{"professionalSummary":null,"keySkills":[]}`, wantError: true},
		{name: "false summary", content: `{"professionalSummary":false,"keySkills":[]}`, wantError: true},
		{name: "missing skills", content: `{"professionalSummary":"x"}`, wantError: true},
		{name: "skills not an array", content: `{"professionalSummary":"x","keySkills":{"Go":true}}`, wantError: true},
		{name: "null document", content: `null`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ParseResumeContent(tt.content)
			require.NoError(t, err)

			resume, err := ValidateResumeContent(raw)
			if tt.wantError {
				var structErr *StructureError
				require.ErrorAs(t, err, &structErr)
				assert.Nil(t, resume)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, resume)
			tt.check(t, resume)
		})
	}
}

func TestGenerate_LooseResumeShape(t *testing.T) {
	loose := `{"professionalSummary":"x","keySkills":[{"skill":"Go"}],"certifications":[{"name":"AWS","issuer":"Amazon"}]}`
	client := &scriptedClient{replies: []reply{{content: "analysis"}, {content: loose}}}

	result, err := New(client).Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.JSONEq(t, loose, string(result.Raw))
	assert.Equal(t, "x", result.Resume.ProfessionalSummary)
}
