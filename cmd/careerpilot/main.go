// Package main provides the entry point for the Career Pilot HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerpilot",
	Short: "Career Pilot HTTP API Server",
	Long:  "Career Pilot generates personalized career roadmaps, analyzes resumes, suggests fields and roles, and answers career questions via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
