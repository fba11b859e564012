package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	extractOutput      string
	extractConcurrency int
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>...",
	Short: "Extract structured resume data from PDF, DOCX or text files",
	Long: `Read each file, extract its text and run the section heuristics over it. The result is
a resume document ready for the builder, one per input file, in input order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Write JSON to this file instead of stdout")
	extractCmd.Flags().IntVarP(&extractConcurrency, "concurrency", "c", 4, "Files processed in parallel")
	rootCmd.AddCommand(extractCmd)
}

// extractResult is the extraction output for one input file
type extractResult struct {
	File     string              `json:"file"`
	Metadata *ingestion.Metadata `json:"metadata"`
	Resume   types.ResumeData    `json:"resume"`

	document  *ingestion.Document
	extracted *types.ExtractedResume
}

func runExtract(cmd *cobra.Command, args []string) error {
	results, err := extractFiles(cmd.Context(), args, extractConcurrency)
	if err != nil {
		return err
	}

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for _, r := range results {
			printer.PrintDocument(r.document)
			printer.PrintExtractedResume(r.extracted)
		}
	}

	var out any = results
	if len(results) == 1 {
		out = results[0]
	}
	return writeJSON(cmd.OutOrStdout(), extractOutput, out)
}

// extractFiles ingests paths concurrently; results keep the input order.
// The first failure cancels the remaining files.
func extractFiles(ctx context.Context, paths []string, limit int) ([]extractResult, error) {
	results := make([]extractResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := ingestion.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			extracted := parsing.ExtractResumeData(doc.Text)
			results[i] = extractResult{
				File:      path,
				Metadata:  doc.Metadata,
				Resume:    resume.FromExtracted(extracted),
				document:  doc,
				extracted: extracted,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return writeOutput(w, path, append(data, '\n'))
}

// writeOutput writes data to path, or to w when path is empty
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
