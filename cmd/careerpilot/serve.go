package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pilot/internal/config"
	"github.com/jonathan/career-pilot/internal/server"
)

var (
	servePort       int
	serveConfigPath string
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for profiles, roadmaps, resume analysis, chat, suggestions, and job search.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT env)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

// loadEffectiveConfig layers flag values over env values over file values.
func loadEffectiveConfig() (config.Config, error) {
	cfg := config.FromEnv()
	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveVerbose {
		cfg.Verbose = true
	}
	if cfg.Port == 0 {
		cfg.Port = config.DefaultPort
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}

	if cfg.Verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
		log.Printf("config: port=%d gemini_key_set=%t jsearch_key_set=%t database_url_set=%t session_dir=%q",
			cfg.Port, cfg.GeminiAPIKey != "", cfg.JSearchAPIKey != "", cfg.DatabaseURL != "", cfg.SessionDir)
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		JSearchAPIKey: cfg.JSearchAPIKey,
		DatabaseURL:   cfg.DatabaseURL,
		SessionDir:    cfg.SessionDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
