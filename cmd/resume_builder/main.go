// Package main provides the entry point for the resume builder API server and command line tools.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
)

var (
	configPath string
	logLevel   string
	jsonLogs   bool
	verbose    bool

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume builder API server and command line tools",
	Long: `Resume builder extracts structured resumes from PDF, DOCX and text files, asks an LLM
reviewer for suggestions, drafts job-targeted resumes and renders them to HTML or PDF.
Run "serve" for the HTTP API the web client talks to.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write JSON logs instead of console output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print formatted intermediate results to stderr")
}

// loadConfig reads the config file and environment and sets up logging
func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath, os.Getenv)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if err := setupLogging(loaded.LogLevel, jsonLogs, os.Stderr); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
