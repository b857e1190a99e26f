package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pilot/internal/analysis"
	"github.com/jonathan/career-pilot/internal/llm"
)

var analyzeResumeCmd = &cobra.Command{
	Use:   "analyze-resume",
	Short: "Analyze a DOCX resume and print the structured evaluation",
	Long:  "Run the resume analysis pipeline on a local DOCX file: ATS score, top skills, metrics, and improvement suggestions, printed as JSON.",
	RunE:  runAnalyzeResume,
}

var (
	analyzeInputFile  string
	analyzeAPIKey     string
	analyzeOutputFile string
)

func init() {
	analyzeResumeCmd.Flags().StringVarP(&analyzeInputFile, "in", "i", "", "Path to DOCX resume file (required)")
	analyzeResumeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeResumeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	_ = analyzeResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeResumeCmd)
}

func runAnalyzeResume(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(analyzeAPIKey)
	if err != nil {
		return err
	}

	if !strings.EqualFold(filepath.Ext(analyzeInputFile), ".docx") {
		return fmt.Errorf("only DOCX files are supported: %s", analyzeInputFile)
	}
	data, err := os.ReadFile(analyzeInputFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	analyzer := analysis.NewAnalyzer(client)
	result, err := analyzer.Analyze(ctx, filepath.Base(analyzeInputFile), analysis.DocxMIME, data)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if analyzeOutputFile != "" {
		if err := os.WriteFile(analyzeOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Analysis written to %s\n", analyzeOutputFile)
		return nil
	}

	fmt.Println(string(jsonBytes))
	return nil
}
