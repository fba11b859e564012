package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// errInvalidForm is returned after the per-field messages have been printed
var errInvalidForm = errors.New("invalid form")

var (
	generateForm    types.GenerateResumeForm
	generateJobFile string
	generateOutput  string
	generateHTML    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a resume targeted at a job description",
	Long: `Analyze a job description, then draft a tailored resume for the candidate.
The job description comes from --job, --job-file or --job-url. Blank candidate fields are
filled with placeholders. The generated resume JSON is printed as the model produced it.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateForm.Name, "name", "", "Candidate name")
	f.StringVar(&generateForm.Email, "email", "", "Candidate email")
	f.StringVar(&generateForm.LinkedIn, "linkedin", "", "Candidate LinkedIn URL")
	f.StringVar(&generateForm.Education, "education", "", "Education summary")
	f.StringVar(&generateForm.JobDescription, "job", "", "Job description text")
	f.StringVar(&generateJobFile, "job-file", "", "Read the job description from a file")
	f.StringVar(&generateForm.JobURL, "job-url", "", "Fetch the job description from a posting URL")
	f.StringVarP(&generateOutput, "out", "o", "", "Write resume JSON to this file instead of stdout")
	f.StringVar(&generateHTML, "html", "", "Also render the generated resume to this HTML file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	form := generateForm
	if generateJobFile != "" {
		data, err := os.ReadFile(generateJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		form.JobDescription = string(data)
	}

	if err := form.Validate(); err != nil {
		writeFieldErrors(cmd.ErrOrStderr(), err)
		return errInvalidForm
	}

	client, err := llm.NewClient(cmd.Context(), cfg.ChatLLM())
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	gen := generation.New(client, generation.WithFetcher(fetch.NewJobFetcher(nil, cfg.UseBrowser)))
	result, err := gen.GenerateWithProgress(cmd.Context(), form.ToRequest(), func(e generation.ProgressEvent) {
		fmt.Fprintln(cmd.ErrOrStderr(), e.Message) //nolint:errcheck
	})
	if err != nil {
		return err
	}

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintJobAnalysis(result.JobAnalysis)
		printer.PrintGeneratedResume(result.Resume)
	}

	if generateHTML != "" {
		html, err := rendering.RenderGeneratedHTML(result.Resume)
		if err != nil {
			return err
		}
		if err := writeOutput(nil, generateHTML, []byte(html)); err != nil {
			return err
		}
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, result.Raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format resume: %w", err)
	}
	indented.WriteByte('\n')
	return writeOutput(cmd.OutOrStdout(), generateOutput, indented.Bytes())
}

// writeFieldErrors prints one "field: message" line per invalid form field, sorted by field
func writeFieldErrors(w io.Writer, err error) {
	messages := types.FieldMessages(err)
	fields := make([]string, 0, len(messages))
	for field := range messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, messages[field]) //nolint:errcheck
	}
}
