package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/roadmap"
)

var generateRoadmapCmd = &cobra.Command{
	Use:   "generate-roadmap",
	Short: "Generate a career roadmap from profile attributes",
	Long:  "Generate a personalized learning roadmap for the given education level, interests, strengths, work preferences, field, and role, and print it as JSON.",
	RunE:  runGenerateRoadmap,
}

var (
	genEducation   string
	genInterests   string
	genStrengths   string
	genPreferences string
	genField       string
	genRole        string
	genAPIKey      string
	genOutputFile  string
)

func init() {
	generateRoadmapCmd.Flags().StringVar(&genEducation, "education", "", "Education level")
	generateRoadmapCmd.Flags().StringVar(&genInterests, "interests", "", "Comma-separated interests")
	generateRoadmapCmd.Flags().StringVar(&genStrengths, "strengths", "", "Comma-separated strengths")
	generateRoadmapCmd.Flags().StringVar(&genPreferences, "preferences", "", "Comma-separated work preferences")
	generateRoadmapCmd.Flags().StringVar(&genField, "field", "", "Broad career field")
	generateRoadmapCmd.Flags().StringVar(&genRole, "role", "", "Specific target role")
	generateRoadmapCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateRoadmapCmd.Flags().StringVarP(&genOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")

	rootCmd.AddCommand(generateRoadmapCmd)
}

func resolveAPIKey(flagValue string) (string, error) {
	apiKey := flagValue
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	return apiKey, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func runGenerateRoadmap(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(genAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	gen := roadmap.NewGenerator(client)
	tasks, err := gen.Generate(ctx, roadmap.GenerationAttrs{
		EducationLevel:  genEducation,
		Interests:       splitList(genInterests),
		Strengths:       splitList(genStrengths),
		WorkPreferences: splitList(genPreferences),
		BroadField:      genField,
		SpecificRole:    genRole,
	})
	if err != nil {
		return fmt.Errorf("failed to generate roadmap: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if genOutputFile != "" {
		if err := os.WriteFile(genOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Roadmap written to %s\n", genOutputFile)
		return nil
	}

	fmt.Println(string(jsonBytes))
	return nil
}
