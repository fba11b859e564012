package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/suggestions"
	"github.com/jonathan/resume-builder/internal/types"
)

var suggestRole string

var suggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Ask the reviewer model for suggestions on a resume",
	Long: `Extract the text of a resume file and ask the suggestions provider for summary,
experience and skills suggestions targeted at --role. Prints the suggestions and the
enhancements they imply for the extracted resume.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestRole, "role", "r", "", "Target role (required)")
	_ = suggestCmd.MarkFlagRequired("role")
	rootCmd.AddCommand(suggestCmd)
}

// suggestOutput is what the suggest command prints
type suggestOutput struct {
	Suggestions  types.Suggestions     `json:"suggestions"`
	Enhancements []types.AIEnhancement `json:"enhancements"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	doc, err := ingestion.ReadFile(args[0])
	if err != nil {
		return err
	}

	service, err := suggestions.NewServiceFromConfig(cmd.Context(), cfg.SuggestionsLLM())
	if err != nil {
		return err
	}
	defer service.Close() //nolint:errcheck
	if !service.Enabled() {
		return errors.New("suggestions are disabled: set " + config.EnvOpenRouterAPIKey + " or choose a provider with LLM_PROVIDER")
	}

	sugg := service.GetAISuggestions(cmd.Context(), doc.Text, suggestRole)
	current := resume.SetTargetRole(resume.FromExtracted(parsing.ExtractResumeData(doc.Text)), suggestRole)

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSuggestions(sugg)
	}
	if sugg.IsEmpty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "No suggestions returned") //nolint:errcheck
	}

	return writeJSON(cmd.OutOrStdout(), "", suggestOutput{
		Suggestions:  sugg,
		Enhancements: suggestions.ToEnhancements(current, sugg),
	})
}
